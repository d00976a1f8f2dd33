package repository

import (
	"context"
	"fmt"
	"sort"

	interfaces "school-api/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// TxManager is the transaction coordinator. Run opens a database transaction,
// takes a postgres advisory lock per resource scope key, then hands fn an
// EntityStore bound to the transaction. Validators re-run inside fn against
// state no concurrent writer holding the same key can change, which closes
// the validate-then-commit race; the schema's unique indexes stay as the
// final arbiter.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

var _ interfaces.TransactionManager = (*TxManager)(nil)

func (m *TxManager) Run(ctx context.Context, lockKeys []string, fn func(store interfaces.EntityStore) error) error {
	keys := make([]string, len(lockKeys))
	copy(keys, lockKeys)
	// Locks are taken in sorted order so two callers sharing keys cannot
	// deadlock.
	sort.Strings(keys)

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return fmt.Errorf("acquiring lock %q: %w", key, err)
			}
		}
		return fn(NewEntityStore(tx))
	})
}
