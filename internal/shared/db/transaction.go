// Package db provides database utilities including transaction management.
package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// txKey is the context key for storing transaction.
type txKey struct{}

// Option adjusts the sql.TxOptions a transaction is opened with.
type Option func(*sql.TxOptions)

// WithIsolation overrides the default READ COMMITTED isolation level.
func WithIsolation(level sql.IsolationLevel) Option {
	return func(opts *sql.TxOptions) {
		opts.Isolation = level
	}
}

// TransactionManager manages database transactions.
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new TransactionManager.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes the given function within a database transaction
// opened at READ COMMITTED isolation unless overridden. The transaction handle
// is carried in the derived context so repositories join it transparently.
// A nil return commits; any error rolls back every write and is re-raised
// unmodified. The handle never outlives the call.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	txOpts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	for _, opt := range opts {
		opt(txOpts)
	}

	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	}, txOpts)
}

// GetTx returns the transaction from context if available, otherwise returns the default DB.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext returns the transaction from context if available.
// This is a standalone function for use in repositories.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
