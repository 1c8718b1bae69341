package model

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes money leaving an account from money entering it.
// The amount sign alone is not reliable across import sources, so the type is
// carried explicitly on every transaction.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Frequency is the recurrence period of a detected pattern.
type Frequency string

const (
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

// Frequencies lists all candidate frequencies in evaluation order, shortest
// period first. Detection relies on this order to break confidence ties in
// favor of the shorter period.
var Frequencies = []Frequency{
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyYearly,
}

// ParseFrequency returns the Frequency for its string form, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToUpper(s)); f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}

// PeriodDays returns the nominal period length in days.
func (f Frequency) PeriodDays() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30.44
	case FrequencyQuarterly:
		return 91.31
	case FrequencyYearly:
		return 365.25
	default:
		return 0
	}
}

// Next advances a date by one period using calendar arithmetic, so a monthly
// pattern billed on the 31st lands on a real day in shorter months.
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

// Transaction is the flat read projection of an imported bank transaction.
// Detection only consumes these fields; the category link and any richer
// import metadata stay with the import layer.
type Transaction struct {
	ID           string          `json:"id" firestore:"id"`
	AccountID    string          `json:"accountId" firestore:"accountId"`
	Date         time.Time       `json:"date" firestore:"date"`
	AmountCents  int64           `json:"amountCents" firestore:"amountCents"`
	Counterparty string          `json:"counterparty" firestore:"counterparty"`
	Description  string          `json:"description" firestore:"description"`
	Type         TransactionType `json:"type" firestore:"type"`
	CategoryID   string          `json:"categoryId,omitempty" firestore:"categoryId,omitempty"`
}

// RecurringTransaction is a detected recurring pattern for one account,
// merchant and direction. (AccountID, MerchantPattern, Type) is the natural
// key: a merchant with both debit and credit flows yields two records.
type RecurringTransaction struct {
	ID                   string          `json:"id" firestore:"id"`
	AccountID            string          `json:"accountId" firestore:"accountId"`
	MerchantPattern      string          `json:"merchantPattern" firestore:"merchantPattern"`
	DisplayName          string          `json:"displayName" firestore:"displayName"`
	PredictedAmountCents int64           `json:"predictedAmountCents" firestore:"predictedAmountCents"`
	AmountVariance       float64         `json:"amountVariance" firestore:"amountVariance"`
	Frequency            Frequency       `json:"frequency" firestore:"frequency"`
	ConfidenceScore      float64         `json:"confidenceScore" firestore:"confidenceScore"`
	IntervalConsistency  float64         `json:"intervalConsistency" firestore:"intervalConsistency"`
	OccurrenceCount      int             `json:"occurrenceCount" firestore:"occurrenceCount"`
	LastOccurrence       time.Time       `json:"lastOccurrence" firestore:"lastOccurrence"`
	NextExpected         time.Time       `json:"nextExpected" firestore:"nextExpected"`
	IsActive             bool            `json:"isActive" firestore:"isActive"`
	Type                 TransactionType `json:"type" firestore:"type"`
	CategoryID           string          `json:"categoryId,omitempty" firestore:"categoryId,omitempty"`
	CreatedAt            time.Time       `json:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt" firestore:"updatedAt"`
}

// Key returns the natural idempotency key of the pattern within its account.
func (rt *RecurringTransaction) Key() string {
	return rt.MerchantPattern + "|" + string(rt.Type)
}
