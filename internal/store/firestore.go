package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/hausbuch/backend/internal/model"
)

const (
	transactionsCollection = "transactions"
	recurringCollection    = "recurringTransactions"
	accountsCollection     = "accounts"
)

// FirestoreStore implements Store using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{client: client}
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if _, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, tx); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	// Track the owning account so detection jobs can enumerate accounts
	// without scanning the whole transaction collection.
	_, err := s.client.Collection(accountsCollection).Doc(tx.AccountID).Set(ctx, map[string]interface{}{
		"id": tx.AccountID,
	})
	if err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}
	return nil
}

func (s *FirestoreStore) BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error {
	bw := s.client.BulkWriter(ctx)
	accounts := make(map[string]bool)
	for _, tx := range txns {
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		if _, err := bw.Set(s.client.Collection(transactionsCollection).Doc(tx.ID), tx); err != nil {
			return fmt.Errorf("failed to enqueue transaction write: %w", err)
		}
		accounts[tx.AccountID] = true
	}
	for accountID := range accounts {
		doc := s.client.Collection(accountsCollection).Doc(accountID)
		if _, err := bw.Set(doc, map[string]interface{}{"id": accountID}); err != nil {
			return fmt.Errorf("failed to enqueue account write: %w", err)
		}
	}
	bw.End()
	return nil
}

func (s *FirestoreStore) ListTransactionsForAccount(ctx context.Context, accountID string, since time.Time) ([]*model.Transaction, error) {
	iter := s.client.Collection(transactionsCollection).
		Where("accountId", "==", accountID).
		Where("date", ">=", since).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		result = append(result, &tx)
	}
	return result, nil
}

func (s *FirestoreStore) ListAccountIDs(ctx context.Context) ([]string, error) {
	iter := s.client.Collection(accountsCollection).Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}

// Recurring transaction operations

func (s *FirestoreStore) GetRecurringTransaction(ctx context.Context, accountID, id string) (*model.RecurringTransaction, error) {
	doc, err := s.client.Collection(recurringCollection).Doc(id).Get(ctx)
	if err != nil {
		if doc != nil && !doc.Exists() {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}
	var rt model.RecurringTransaction
	if err := doc.DataTo(&rt); err != nil {
		return nil, fmt.Errorf("failed to parse recurring transaction: %w", err)
	}
	if rt.AccountID != accountID {
		return nil, nil
	}
	return &rt, nil
}

func (s *FirestoreStore) GetRecurringTransactionByPattern(ctx context.Context, accountID, merchantPattern string, txType model.TransactionType) (*model.RecurringTransaction, error) {
	iter := s.client.Collection(recurringCollection).
		Where("accountId", "==", accountID).
		Where("merchantPattern", "==", merchantPattern).
		Where("type", "==", string(txType)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transaction: %w", err)
	}
	var rt model.RecurringTransaction
	if err := doc.DataTo(&rt); err != nil {
		return nil, fmt.Errorf("failed to parse recurring transaction: %w", err)
	}
	return &rt, nil
}

func (s *FirestoreStore) UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error {
	if _, err := s.client.Collection(recurringCollection).Doc(rt.ID).Set(ctx, rt); err != nil {
		return fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	return nil
}

func (s *FirestoreStore) ListRecurringTransactions(ctx context.Context, accountID string, activeOnly bool) ([]*model.RecurringTransaction, error) {
	query := s.client.Collection(recurringCollection).Where("accountId", "==", accountID)
	if activeOnly {
		query = query.Where("isActive", "==", true)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.RecurringTransaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
		}
		var rt model.RecurringTransaction
		if err := doc.DataTo(&rt); err != nil {
			return nil, fmt.Errorf("failed to parse recurring transaction: %w", err)
		}
		result = append(result, &rt)
	}
	return result, nil
}

// SaveRecurringTransactions runs the whole batch inside one Firestore
// transaction so a force run can never leave an account's patterns
// half-deleted.
func (s *FirestoreStore) SaveRecurringTransactions(ctx context.Context, accountID string, records []*model.RecurringTransaction, replaceAll bool) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if replaceAll {
			iter := tx.Documents(s.client.Collection(recurringCollection).Where("accountId", "==", accountID))
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return err
				}
				if err := tx.Delete(doc.Ref); err != nil {
					return err
				}
			}
		}
		for _, rt := range records {
			if rt.ID == "" {
				rt.ID = uuid.New().String()
			}
			if err := tx.Set(s.client.Collection(recurringCollection).Doc(rt.ID), rt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save recurring transactions: %w", err)
	}
	return nil
}
