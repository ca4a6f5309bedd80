// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fees estimates official filing fees for a national application
// and for an international application under the Madrid System.
//
// Amounts are held in minor units (cents or centimes) to keep sums exact.
package fees

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Currencies used by the calculators.
const (
	EUR = "EUR"
	CHF = "CHF"
)

// Nice classification bounds.
const (
	minClass = 1
	maxClass = 45
)

var (
	// ErrNoClasses is returned when a fee is requested without any class.
	ErrNoClasses = errors.New("at least one class is required")

	// ErrInvalidClass is returned for a class outside 1-45.
	ErrInvalidClass = errors.New("class outside the Nice classification")

	// ErrNoCountries is returned when a Madrid fee is requested without a
	// designated country.
	ErrNoCountries = errors.New("at least one designated country is required")
)

// Money is an amount in minor units of Currency.
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

func units(whole int64, currency string) Money {
	return Money{Amount: whole * 100, Currency: currency}
}

// Times returns m multiplied by n.
func (m Money) Times(n int) Money {
	return Money{Amount: m.Amount * int64(n), Currency: m.Currency}
}

// Plus returns m + o. Both must share a currency.
func (m Money) Plus(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}
}

// String formats m as "653.00 CHF".
func (m Money) String() string {
	sign := ""
	a := m.Amount
	if a < 0 {
		sign, a = "-", -a
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, a/100, a%100, m.Currency)
}

// normalizeClasses validates and deduplicates classes, returning them sorted.
func normalizeClasses(classes []int) ([]int, error) {
	if len(classes) == 0 {
		return nil, ErrNoClasses
	}
	seen := make(map[int]bool, len(classes))
	var out []int
	for _, c := range classes {
		if c < minClass || c > maxClass {
			return nil, fmt.Errorf("%w: %d", ErrInvalidClass, c)
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out, nil
}

// normalizeCountries uppercases and deduplicates country codes, keeping
// their first-seen order.
func normalizeCountries(countries []string) []string {
	seen := make(map[string]bool, len(countries))
	var out []string
	for _, c := range countries {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
