// Package simpletxmanager сериализуемые транзакции поверх обычного *sql.DB
// Используется, когда метрики выключены
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/equiclub/EQC-BookingService/pkg/dbtx"
)

const pqSerializationFailure = "40001"

const defaultMaxRetries = 3

// ErrTxFailed возвращается, когда транзакция не выполнилась после всех ретраев
var ErrTxFailed = errors.New("simpletxmanager: transaction failed")

// TransactionManager выполняет функции в сериализуемых транзакциях
type TransactionManager struct {
	db         *sql.DB
	maxRetries int
}

// NewTransactionManager создает transaction manager поверх *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		db:         db,
		maxRetries: defaultMaxRetries,
	}
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE с ретраями при 40001
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		err := m.runInTx(ctx, fn)
		if err == nil {
			return nil
		}

		if !isSerializationFailure(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("%w: %d attempts exhausted: %v", ErrTxFailed, m.maxRetries+1, lastErr)
}

func (m *TransactionManager) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbtx.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTxFailed, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure
	}
	return false
}
