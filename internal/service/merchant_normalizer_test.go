package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name         string
		counterparty string
		description  string
		want         string
	}{
		{
			name:         "iban preferred over description",
			counterparty: "NL91 ABNA 0417 1643 00",
			description:  "Netflix March",
			want:         "NL91ABNA0417164300",
		},
		{
			name:         "iban prefix stripped",
			counterparty: "IBAN: NL91 ABNA 0417 1643 00",
			description:  "Netflix March",
			want:         "NL91ABNA0417164300",
		},
		{
			name:         "lowercase iban uppercased",
			counterparty: "nl91 abna 0417 1643 00",
			description:  "",
			want:         "NL91ABNA0417164300",
		},
		{
			name:         "generic counterparty falls back to description",
			counterparty: "POS",
			description:  "Albert Heijn 1234",
			want:         "albert heijn",
		},
		{
			name:         "empty counterparty falls back to description",
			counterparty: "",
			description:  "Spotify AB",
			want:         "spotify ab",
		},
		{
			name:         "trailing reference number stripped",
			counterparty: "",
			description:  "Spotify AB ref 123456",
			want:         "spotify ab",
		},
		{
			name:         "trailing date stripped",
			counterparty: "",
			description:  "Gym Membership 2024-03-01",
			want:         "gym membership",
		},
		{
			name:         "diacritics folded",
			counterparty: "",
			description:  "Café Müller",
			want:         "cafe muller",
		},
		{
			name:         "whitespace collapsed and lowercased",
			counterparty: "",
			description:  "  ACME   Energy  ",
			want:         "acme energy",
		},
		{
			name:         "non-generic free-text counterparty used",
			counterparty: "Netflix International BV",
			description:  "Subscription 99887",
			want:         "netflix international bv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMerchant(tt.counterparty, tt.description))
		})
	}
}

func TestNormalizeMerchantDeterministic(t *testing.T) {
	first := NormalizeMerchant("IBAN: DE89 3704 0044 0532 0130 00", "Miete Wohnung")
	second := NormalizeMerchant("IBAN: DE89 3704 0044 0532 0130 00", "Miete Wohnung")
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestNormalizeMerchantVaryingReferencesSameKey(t *testing.T) {
	// The same merchant with per-occurrence reference suffixes must map to a
	// single key, or recurrence grouping fragments.
	keys := map[string]bool{}
	for _, desc := range []string{
		"Vattenfall Energie ref 1001",
		"Vattenfall Energie ref 1002",
		"Vattenfall Energie ref 1003",
	} {
		keys[NormalizeMerchant("", desc)] = true
	}
	assert.Len(t, keys, 1)
}
