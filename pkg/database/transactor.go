// Package database carries a gorm transaction through context.Context so that
// repositories from different packages can join one atomic unit.
package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

type (
	Transactor interface {
		// WithinTransaction runs fn inside a transaction. Calls nested under an
		// existing transaction join it instead of opening a new one.
		WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	}

	transactor struct {
		db *gorm.DB
	}
)

func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction bound to ctx, or db scoped to ctx when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}
