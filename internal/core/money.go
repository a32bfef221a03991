// Package core holds the record model and the pure derived-value rules
// (profit, statistics, filtering) shared by every view.
//
// This file contains the Money value type and amount parsing. Amounts are
// whole Vietnamese đồng; there is no fractional unit.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in whole đồng. It marshals as a bare JSON number so the
// snapshot payload stays field-compatible with earlier data.
type Money struct {
	Dong int64
}

var ErrNegativeAmount = errors.New("negative amount")

func (m Money) Validate() error {
	if m.Dong < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Dong: m.Dong + o.Dong} }

func (m Money) Sub(o Money) Money { return Money{Dong: m.Dong - o.Dong} }

func (m Money) IsZero() bool { return m.Dong == 0 }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Dong, 10)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		m.Dong = 0
		return nil
	}
	// Tolerate float-encoded amounts from older payloads.
	if i := strings.IndexAny(s, ".eE"); i >= 0 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		m.Dong = int64(f)
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	m.Dong = v
	return nil
}

// String formats the amount with dot thousand separators, e.g. "550.000".
func (m Money) String() string {
	neg := m.Dong < 0
	v := m.Dong
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ParseAmount converts free-text user input to a non-negative amount.
//
// All non-digit characters are stripped ("1.200.000 đ" -> 1200000) and the
// remainder parsed as an integer. Empty or unparseable input yields 0 rather
// than an error; a bad digit never fails the whole form.
func ParseAmount(s string) Money {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return Money{}
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return Money{}
	}
	return Money{Dong: v}
}
