package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/assistant-mcp/knowd/domain/repository"
)

// ApplyOptions renders an option list onto a GORM session: WHERE
// predicates, then ORDER BY columns, then LIMIT.
func ApplyOptions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	q := repository.Build(options...)

	db = applyPredicates(db, q.Predicates())
	for _, s := range q.Sorts() {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: s.Column()},
			Desc:   s.Descending(),
		})
	}
	if limit := q.Limit(); limit > 0 {
		db = db.Limit(limit)
	}
	return db
}

// ApplyConditions renders only the WHERE predicates. COUNT and DELETE
// statements use this form, where ordering and limits do not apply.
func ApplyConditions(db *gorm.DB, options ...repository.Option) *gorm.DB {
	return applyPredicates(db, repository.Build(options...).Predicates())
}

func applyPredicates(db *gorm.DB, predicates []repository.Predicate) *gorm.DB {
	for _, p := range predicates {
		if p.Set() {
			db = db.Where(p.Column()+" IN ?", p.Arg())
		} else {
			db = db.Where(p.Column()+" = ?", p.Arg())
		}
	}
	return db
}
