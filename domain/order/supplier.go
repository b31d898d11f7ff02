package order

// SupplierCapacity is a supplier together with its production load.
type SupplierCapacity struct {
	id            string
	name          string
	totalCapacity int
	usedCapacity  int
}

// NewSupplierCapacity creates a SupplierCapacity.
func NewSupplierCapacity(id, name string, totalCapacity, usedCapacity int) SupplierCapacity {
	return SupplierCapacity{
		id:            id,
		name:          name,
		totalCapacity: totalCapacity,
		usedCapacity:  usedCapacity,
	}
}

// ID returns the supplier ID.
func (s SupplierCapacity) ID() string { return s.id }

// Name returns the supplier name.
func (s SupplierCapacity) Name() string { return s.name }

// TotalCapacity returns the supplier's total production capacity.
func (s SupplierCapacity) TotalCapacity() int { return s.totalCapacity }

// UsedCapacity returns how much capacity is already committed.
func (s SupplierCapacity) UsedCapacity() int { return s.usedCapacity }
