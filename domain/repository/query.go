// Package repository defines the option-based lookup language shared by
// store interfaces. A store method takes a variadic Option list and
// builds a Query from it; the database layer renders the Query's
// predicates, sort order and limit into SQL. Domain packages define
// typed options (WithSupplierID, WithStatus) on top of the raw
// WithCondition primitives.
package repository

// Option narrows or orders a store lookup.
type Option func(Query) Query

// Query is the built form of an option list.
type Query struct {
	predicates []Predicate
	sorts      []Sort
	limit      int
}

// Build folds options into a Query.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		q = opt(q)
	}
	return q
}

// Predicates returns the row restrictions in the order they were added.
func (q Query) Predicates() []Predicate {
	out := make([]Predicate, len(q.predicates))
	copy(out, q.predicates)
	return out
}

// Sorts returns the sort specifications in the order they were added.
func (q Query) Sorts() []Sort {
	out := make([]Sort, len(q.sorts))
	copy(out, q.sorts)
	return out
}

// Limit returns the row cap. Zero means unlimited.
func (q Query) Limit() int {
	return q.limit
}

// Predicate restricts a lookup to rows whose column equals a single
// value, or, when Set is true, equals any value of a set.
type Predicate struct {
	column string
	arg    any
	set    bool
}

// Column returns the restricted column name.
func (p Predicate) Column() string { return p.column }

// Arg returns the comparison value, or the value set for Set
// predicates.
func (p Predicate) Arg() any { return p.arg }

// Set reports whether the predicate matches against a value set.
func (p Predicate) Set() bool { return p.set }

// Sort orders results by one column.
type Sort struct {
	column     string
	descending bool
}

// Column returns the sorted column name.
func (s Sort) Column() string { return s.column }

// Descending reports whether the sort is largest-first.
func (s Sort) Descending() bool { return s.descending }

// WithCondition restricts results to rows where column equals value.
func WithCondition(column string, value any) Option {
	return func(q Query) Query {
		q.predicates = append(q.predicates, Predicate{column: column, arg: value})
		return q
	}
}

// WithConditionIn restricts results to rows where column equals any of
// the given values.
func WithConditionIn(column string, values any) Option {
	return func(q Query) Query {
		q.predicates = append(q.predicates, Predicate{column: column, arg: values, set: true})
		return q
	}
}

// WithOrderAsc sorts results by column, smallest first.
func WithOrderAsc(column string) Option {
	return func(q Query) Query {
		q.sorts = append(q.sorts, Sort{column: column})
		return q
	}
}

// WithOrderDesc sorts results by column, largest first.
func WithOrderDesc(column string) Option {
	return func(q Query) Query {
		q.sorts = append(q.sorts, Sort{column: column, descending: true})
		return q
	}
}

// WithLimit caps the number of returned rows.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.limit = n
		return q
	}
}
