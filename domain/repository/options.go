package repository

// WithOrderID filters by the "id" column of the orders table.
func WithOrderID(id string) Option {
	return WithCondition("id", id)
}

// WithOrderIDIn filters by the "id" column using IN.
func WithOrderIDIn(ids []string) Option {
	return WithConditionIn("id", ids)
}

// WithSupplierID filters by the "supplier_id" column.
func WithSupplierID(id string) Option {
	return WithCondition("supplier_id", id)
}

// WithStatus filters by the "status" column.
func WithStatus(status string) Option {
	return WithCondition("status", status)
}

// WithStatusIn filters by the "status" column using IN.
func WithStatusIn(statuses []string) Option {
	return WithConditionIn("status", statuses)
}

// WithOldestFirst orders results by creation time, oldest first.
func WithOldestFirst() Option {
	return WithOrderAsc("created_at")
}

// WithHighestPriorityFirst orders results by priority score,
// descending.
func WithHighestPriorityFirst() Option {
	return WithOrderDesc("priority_score")
}
