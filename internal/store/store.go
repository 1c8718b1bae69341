package store

import (
	"context"
	"time"

	"github.com/hausbuch/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// Store defines the database operations the detection and forecast services
// depend on. Lookups return (nil, nil) when the record does not exist: an
// absent pattern is an expected outcome, not an error.
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error
	// ListTransactionsForAccount returns the account's transactions dated on
	// or after since, sorted by date ascending.
	ListTransactionsForAccount(ctx context.Context, accountID string, since time.Time) ([]*model.Transaction, error)

	// ListAccountIDs returns every account that has transactions.
	ListAccountIDs(ctx context.Context) ([]string, error)

	// Recurring transaction operations
	GetRecurringTransaction(ctx context.Context, accountID, id string) (*model.RecurringTransaction, error)
	GetRecurringTransactionByPattern(ctx context.Context, accountID, merchantPattern string, txType model.TransactionType) (*model.RecurringTransaction, error)
	UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error
	ListRecurringTransactions(ctx context.Context, accountID string, activeOnly bool) ([]*model.RecurringTransaction, error)
	// SaveRecurringTransactions persists a detection run's results in one
	// atomic batch. With replaceAll set, every existing record for the
	// account is deleted first; a failed run must not leave the account's
	// patterns half-written.
	SaveRecurringTransactions(ctx context.Context, accountID string, records []*model.RecurringTransaction, replaceAll bool) error
}
