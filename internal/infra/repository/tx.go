package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
)

type txKey struct{}

// GormTransactor opens a transaction and carries it in the context so every
// gorm repository of this package joins it.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context) error,
) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

func offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Compile-time check
var _ domain.Transactor = (*GormTransactor)(nil)
