package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeMerchant canonicalizes a raw counterparty identifier and free-text
// description into a stable merchant key. The key is the join key for all
// recurrence grouping: two transactions from the same real-world merchant must
// map to the same key, or the pattern fragments into low-confidence noise.
//
// The counterparty identifier wins when it looks like an IBAN or account
// number. Generic counterparties (card terminals, "payment", plain reference
// text) fall back to the normalized description.
func NormalizeMerchant(counterparty, description string) string {
	cp := strings.TrimSpace(counterparty)
	for _, prefix := range []string{"IBAN:", "iban:", "Iban:"} {
		cp = strings.TrimSpace(strings.TrimPrefix(cp, prefix))
	}

	if looksLikeIBAN(cp) {
		return strings.ToUpper(stripSpaces(cp))
	}
	if cp != "" && !isGenericCounterparty(cp) {
		return normalizeText(cp)
	}
	return normalizeText(description)
}

// genericCounterparties are counterparty values that identify a channel rather
// than a merchant and cannot discriminate between payees.
var genericCounterparties = map[string]bool{
	"payment":        true,
	"card payment":   true,
	"pos":            true,
	"atm":            true,
	"transfer":       true,
	"direct debit":   true,
	"standing order": true,
	"unknown":        true,
	"n/a":            true,
}

func isGenericCounterparty(cp string) bool {
	lowered := strings.ToLower(strings.TrimSpace(cp))
	if len(lowered) < 3 {
		return true
	}
	return genericCounterparties[lowered]
}

// looksLikeIBAN reports whether s has the shape of an IBAN: a two-letter
// country code, two check digits, then at least ten alphanumerics.
func looksLikeIBAN(s string) bool {
	s = stripSpaces(s)
	if len(s) < 14 || len(s) > 34 {
		return false
	}
	if !isASCIILetter(rune(s[0])) || !isASCIILetter(rune(s[1])) {
		return false
	}
	if !unicode.IsDigit(rune(s[2])) || !unicode.IsDigit(rune(s[3])) {
		return false
	}
	for _, r := range s[4:] {
		if !isASCIILetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// foldMarks decomposes text and drops combining marks, so "Müller" and
// "Muller" produce the same key across import sources with inconsistent
// encodings.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases, folds diacritics, collapses whitespace and strips
// trailing per-occurrence reference tokens (invoice numbers, dates) while
// keeping the stable merchant substring.
func normalizeText(s string) string {
	folded, _, err := transform.String(foldMarks, s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	// Drop trailing tokens that vary per occurrence: pure numbers, dates,
	// and reference markers like "ref" or "#12345".
	for len(fields) > 1 && isReferenceToken(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
		// A dangling "ref"/"nr" marker left behind is itself noise.
		if len(fields) > 1 {
			switch fields[len(fields)-1] {
			case "ref", "reference", "nr", "no", "kenmerk":
				fields = fields[:len(fields)-1]
			}
		}
	}
	return strings.Join(fields, " ")
}

// isReferenceToken reports whether a token is digit-heavy enough to be a
// reference number or date rather than part of a merchant name.
func isReferenceToken(tok string) bool {
	tok = strings.TrimLeft(tok, "#*")
	if tok == "" {
		return true
	}
	digits := 0
	for _, r := range tok {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits*2 > len(tok)
}
