package persistence

import "time"

// OrderModel represents a supplier order in the database.
type OrderModel struct {
	ID               string    `gorm:"column:id;primaryKey;size:64"`
	OrderNumber      string    `gorm:"column:order_number;index;size:64"`
	SupplierID       string    `gorm:"column:supplier_id;index;size:64"`
	ProductName      string    `gorm:"column:product_name;size:255"`
	SKC              string    `gorm:"column:skc;index;size:64"`
	RequiredQuantity int       `gorm:"column:required_quantity;default:0"`
	PriorityScore    float64   `gorm:"column:priority_score;index;default:0"`
	Status           string    `gorm:"column:status;index;size:64"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (OrderModel) TableName() string {
	return "orders"
}

// SupplierModel represents a supplier's production capacity in the database.
type SupplierModel struct {
	ID            string    `gorm:"column:id;primaryKey;size:64"`
	Name          string    `gorm:"column:name;size:255"`
	TotalCapacity int       `gorm:"column:total_capacity;default:0"`
	UsedCapacity  int       `gorm:"column:used_capacity;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ExceptionRecordModel represents a handled order exception in the database.
type ExceptionRecordModel struct {
	RecordID        string    `gorm:"column:record_id;primaryKey;size:64"`
	OrderID         string    `gorm:"column:order_id;index;size:64"`
	SupplierID      string    `gorm:"column:supplier_id;index;size:64"`
	ExceptionType   string    `gorm:"column:exception_type;index;size:255"`
	ExceptionDetail string    `gorm:"column:exception_detail;type:text"`
	HandlerName     string    `gorm:"column:handler_name;size:255"`
	RecordedAt      time.Time `gorm:"column:recorded_at"`
}

// TableName returns the table name.
func (ExceptionRecordModel) TableName() string {
	return "exception_records"
}
