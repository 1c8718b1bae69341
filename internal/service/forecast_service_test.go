package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/store"
)

func TestMonthlyForecastBucketsRecurringOccurrences(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewForecastService(st)
	fixed := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	patterns := []*model.RecurringTransaction{
		{
			AccountID:            "acc-1",
			MerchantPattern:      "netflix",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyMonthly,
			PredictedAmountCents: -1299,
			IsActive:             true,
			NextExpected:         time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			AccountID:            "acc-1",
			MerchantPattern:      "acme payroll",
			Type:                 model.TransactionTypeCredit,
			Frequency:            model.FrequencyMonthly,
			PredictedAmountCents: 250000,
			IsActive:             true,
			NextExpected:         time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, st.SaveRecurringTransactions(context.Background(), "acc-1", patterns, false))

	// One-off groceries inside the trailing window feed the baseline;
	// Netflix charges must not, since an active pattern covers them.
	var txns []*model.Transaction
	for m := 0; m < 3; m++ {
		date := fixed.AddDate(0, -m, -3)
		txns = append(txns,
			testTx("acc-1", "", "Albert Heijn", -30000, model.TransactionTypeDebit, date),
			testTx("acc-1", "", "Netflix", -1299, model.TransactionTypeDebit, date),
		)
	}
	require.NoError(t, st.BatchCreateTransactions(context.Background(), txns))

	forecast, err := svc.MonthlyForecast(context.Background(), "acc-1", 3, 100000)
	require.NoError(t, err)
	require.Len(t, forecast, 3)

	assert.Equal(t, []string{"2026-04", "2026-05", "2026-06"}, []string{forecast[0].Month, forecast[1].Month, forecast[2].Month})
	for _, month := range forecast {
		assert.Equal(t, int64(1299), month.RecurringDebitCents)
		assert.Equal(t, int64(250000), month.RecurringCreditCents)
		assert.Equal(t, int64(-30000), month.BaselineNetCents)
		assert.Equal(t, int64(218701), month.ProjectedNetCents)
	}
	assert.Equal(t, int64(318701), forecast[0].ProjectedBalanceCents)
	assert.Equal(t, int64(537402), forecast[1].ProjectedBalanceCents)
	assert.Equal(t, int64(756103), forecast[2].ProjectedBalanceCents)
}

func TestMonthlyForecastIgnoresInactivePatterns(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewForecastService(st)
	fixed := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	patterns := []*model.RecurringTransaction{
		{
			AccountID:            "acc-1",
			MerchantPattern:      "old gym",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyMonthly,
			PredictedAmountCents: -2999,
			IsActive:             false,
			NextExpected:         time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, st.SaveRecurringTransactions(context.Background(), "acc-1", patterns, false))

	forecast, err := svc.MonthlyForecast(context.Background(), "acc-1", 2, 50000)
	require.NoError(t, err)
	require.Len(t, forecast, 2)
	for _, month := range forecast {
		assert.Zero(t, month.RecurringDebitCents)
		assert.Equal(t, int64(50000), month.ProjectedBalanceCents)
	}
}

func TestMonthlyForecastYearlyPatternHitsOneMonth(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewForecastService(st)
	fixed := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	patterns := []*model.RecurringTransaction{
		{
			AccountID:            "acc-1",
			MerchantPattern:      "car insurance",
			Type:                 model.TransactionTypeDebit,
			Frequency:            model.FrequencyYearly,
			PredictedAmountCents: -48500,
			IsActive:             true,
			NextExpected:         time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, st.SaveRecurringTransactions(context.Background(), "acc-1", patterns, false))

	forecast, err := svc.MonthlyForecast(context.Background(), "acc-1", 6, 0)
	require.NoError(t, err)
	require.Len(t, forecast, 6)

	for _, month := range forecast {
		if month.Month == "2026-05" {
			assert.Equal(t, int64(48500), month.RecurringDebitCents)
		} else {
			assert.Zero(t, month.RecurringDebitCents)
		}
	}
	assert.Equal(t, int64(-48500), forecast[5].ProjectedBalanceCents)
}

func TestMonthlyForecastEmptyAccount(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewForecastService(st)

	forecast, err := svc.MonthlyForecast(context.Background(), "acc-empty", 4, 12345)
	require.NoError(t, err)
	require.Len(t, forecast, 4)
	for _, month := range forecast {
		assert.Zero(t, month.ProjectedNetCents)
		assert.Equal(t, int64(12345), month.ProjectedBalanceCents)
	}
}
