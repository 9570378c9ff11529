// Package txmanager сериализуемые транзакции поверх обёртки с метриками
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/equiclub/EQC-BookingService/pkg/dbmetrics"
	"github.com/equiclub/EQC-BookingService/pkg/dbtx"
)

// Код ошибки PostgreSQL serialization_failure
const pqSerializationFailure = "40001"

const defaultMaxRetries = 3

// ErrTxFailed возвращается, когда транзакция не выполнилась после всех ретраев
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TransactionManager выполняет функции в сериализуемых транзакциях
// с ретраями при serialization failure
type TransactionManager struct {
	db         *dbmetrics.DB
	maxRetries int
}

// NewTransactionManager создает transaction manager поверх обёртки с метриками
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{
		db:         db,
		maxRetries: defaultMaxRetries,
	}
}

// DoSerializable выполняет fn в транзакции с уровнем изоляции SERIALIZABLE
// Транзакция передается в fn через контекст (см. pkg/dbtx)
// При serialization failure (40001) транзакция повторяется до maxRetries раз
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

// isSerializationFailure проверяет, что ошибка - serialization failure PostgreSQL
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure
	}
	return false
}
