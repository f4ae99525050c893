package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ITxManager groups multiple writes into one unit of work: either every
// write inside fn commits, or none of them do.
type ITxManager interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// TxManager implements ITxManager over a *sql.DB.
type TxManager struct {
	DB *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{DB: db}
}

// WithinTx runs fn inside a database transaction. If fn returns an error
// or the commit fails, every write is rolled back.
func (m *TxManager) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
