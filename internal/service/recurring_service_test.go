package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/store"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedMonthlySeries(t *testing.T, st store.Store, accountID, description string, cents int64, n int) {
	t.Helper()
	now := time.Now()
	txns := seriesEvery(accountID, "", description, cents, model.TransactionTypeDebit, now, n, 30, 5)
	require.NoError(t, st.BatchCreateTransactions(context.Background(), txns))
}

func TestDetectForAccountPersistsPatterns(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	seedMonthlySeries(t, st, "acc-1", "Netflix", -1299, 6)

	detected, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, detected, 1)
	assert.NotEmpty(t, detected[0].ID)
	assert.Equal(t, "Netflix", detected[0].DisplayName)

	stored, err := st.ListRecurringTransactions(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, detected[0].ID, stored[0].ID)
}

func TestDetectForAccountIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	seedMonthlySeries(t, st, "acc-1", "Netflix", -1299, 6)

	first, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Re-running over unchanged history updates the same record in place.
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)

	stored, err := st.ListRecurringTransactions(context.Background(), "acc-1", false)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestDetectForAccountMergePreservesOverrides(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	seedMonthlySeries(t, st, "acc-1", "Netflix", -1299, 6)

	detected, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, detected, 1)

	name := "Streaming"
	category := "entertainment"
	inactive := false
	updated, err := svc.UpdateOverrides(context.Background(), "acc-1", detected[0].ID, PatternOverrides{
		DisplayName: &name,
		CategoryID:  &category,
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	merged, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, detected[0].ID, merged[0].ID)
	assert.Equal(t, "Streaming", merged[0].DisplayName)
	assert.Equal(t, "entertainment", merged[0].CategoryID)
	// A deactivated pattern must not come back to life on re-detection.
	assert.False(t, merged[0].IsActive)
}

func TestDetectForAccountForceDiscardsOverrides(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	seedMonthlySeries(t, st, "acc-1", "Netflix", -1299, 6)

	detected, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)
	require.Len(t, detected, 1)

	name := "Streaming"
	inactive := false
	_, err = svc.UpdateOverrides(context.Background(), "acc-1", detected[0].ID, PatternOverrides{
		DisplayName: &name,
		IsActive:    &inactive,
	})
	require.NoError(t, err)

	forced, err := svc.DetectForAccount(context.Background(), "acc-1", true)
	require.NoError(t, err)
	require.Len(t, forced, 1)
	assert.NotEqual(t, detected[0].ID, forced[0].ID)
	assert.Equal(t, "Netflix", forced[0].DisplayName)
	assert.True(t, forced[0].IsActive)

	stored, err := st.ListRecurringTransactions(context.Background(), "acc-1", false)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestDetectForAccountNoPatternsIsNotAnError(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())

	detected, err := svc.DetectForAccount(context.Background(), "acc-empty", false)
	require.NoError(t, err)
	assert.Empty(t, detected)
}

func TestDetectForAccountStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := store.NewMockStore(ctrl)
	st.EXPECT().
		ListTransactionsForAccount(gomock.Any(), "acc-1", gomock.Any()).
		Return(nil, errors.New("backend unavailable"))

	svc := NewRecurringService(st, testLogger())
	_, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction history")
}

func TestDetectAllAccountsIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := store.NewMockStore(ctrl)
	st.EXPECT().ListAccountIDs(gomock.Any()).Return([]string{"acc-bad", "acc-good"}, nil)
	st.EXPECT().
		ListTransactionsForAccount(gomock.Any(), "acc-bad", gomock.Any()).
		Return(nil, errors.New("backend unavailable"))
	st.EXPECT().
		ListTransactionsForAccount(gomock.Any(), "acc-good", gomock.Any()).
		Return(nil, nil)
	st.EXPECT().
		ListRecurringTransactions(gomock.Any(), "acc-good", false).
		Return(nil, nil)

	svc := NewRecurringService(st, testLogger())
	summary, err := svc.DetectAllAccounts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AccountsProcessed)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, 0, summary.PatternsDetected)
}

func TestListForAccountFrequencyFilter(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	seedMonthlySeries(t, st, "acc-1", "Netflix", -1299, 6)
	now := time.Now()
	weekly := seriesEvery("acc-1", "", "Street Market", -2500, model.TransactionTypeDebit, now, 10, 7, 2)
	require.NoError(t, st.BatchCreateTransactions(context.Background(), weekly))

	_, err := svc.DetectForAccount(context.Background(), "acc-1", false)
	require.NoError(t, err)

	all, err := svc.ListForAccount(context.Background(), "acc-1", nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	monthly := model.FrequencyMonthly
	filtered, err := svc.ListForAccount(context.Background(), "acc-1", &monthly, false)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "netflix", filtered[0].MerchantPattern)
}

func TestSummaryNormalizesToMonthly(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	now := time.Now()

	records := []*model.RecurringTransaction{
		{
			AccountID:            "acc-1",
			MerchantPattern:      "netflix",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyMonthly,
			PredictedAmountCents: -1299,
			IsActive:             true,
			NextExpected:         now.AddDate(0, 1, 0),
		},
		{
			AccountID:            "acc-1",
			MerchantPattern:      "salary",
			Type:                 model.TransactionTypeCredit,
			Frequency:            model.FrequencyBiweekly,
			PredictedAmountCents: 140000,
			IsActive:             true,
			NextExpected:         now.AddDate(0, 0, 14),
		},
		{
			AccountID:            "acc-1",
			MerchantPattern:      "old gym",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyMonthly,
			PredictedAmountCents: -2999,
			IsActive:             false,
			NextExpected:         now,
		},
	}
	require.NoError(t, st.SaveRecurringTransactions(context.Background(), "acc-1", records, false))

	summary, err := svc.Summary(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 2, summary.ActiveCount)
	// Inactive patterns are excluded from the monthly totals.
	assert.Equal(t, int64(1299), summary.MonthlyDebitCents)
	// 140000 * 30.44 / 14 = 304400.
	assert.Equal(t, int64(304400), summary.MonthlyCreditCents)
}

func TestUpcomingProjectsWithinHorizon(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())
	now := time.Now()

	records := []*model.RecurringTransaction{
		{
			AccountID:            "acc-1",
			MerchantPattern:      "street market",
			DisplayName:          "Street Market",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyWeekly,
			PredictedAmountCents: -2500,
			IsActive:             true,
			NextExpected:         now.AddDate(0, 0, 3),
		},
		{
			AccountID:            "acc-1",
			MerchantPattern:      "car insurance",
			DisplayName:          "Car Insurance",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyYearly,
			PredictedAmountCents: -48500,
			IsActive:             true,
			NextExpected:         now.AddDate(0, 6, 0),
		},
	}
	require.NoError(t, st.SaveRecurringTransactions(context.Background(), "acc-1", records, false))

	upcoming, err := svc.Upcoming(context.Background(), "acc-1", 30)
	require.NoError(t, err)

	// The weekly pattern fires on days 3, 10, 17, 24; the yearly one is
	// beyond the horizon.
	require.Len(t, upcoming, 4)
	for _, occ := range upcoming {
		assert.Equal(t, "Street Market", occ.DisplayName)
		assert.Equal(t, int64(-2500), occ.AmountCents)
	}
	for i := 1; i < len(upcoming); i++ {
		assert.False(t, upcoming[i].Date.Before(upcoming[i-1].Date))
	}
}

func TestUpdateOverridesUnknownID(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRecurringService(st, testLogger())

	name := "whatever"
	rt, err := svc.UpdateOverrides(context.Background(), "acc-1", "missing", PatternOverrides{DisplayName: &name})
	require.NoError(t, err)
	assert.Nil(t, rt)
}
