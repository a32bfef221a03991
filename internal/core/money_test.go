package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"550000", 550000},
		{"550.000", 550000},
		{"1.200.000 đ", 1200000},
		{"VND 50,000", 50000},
		{" 0 ", 0},
		{"", 0},
		{"abc", 0},
		{"12ab34", 1234},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got.Dong != tc.out {
			t.Fatalf("%q expected %d, got %d", tc.in, tc.out, got.Dong)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 550000, 475000000} {
		b, err := json.Marshal(Money{Dong: v})
		if err != nil {
			t.Fatalf("marshal %d: %v", v, err)
		}
		var got Money
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got.Dong != v {
			t.Fatalf("round trip %d: got %d", v, got.Dong)
		}
	}

	// Marshals as a bare number, not an object.
	b, _ := json.Marshal(Money{Dong: 50000})
	if string(b) != "50000" {
		t.Fatalf("expected bare number, got %s", b)
	}

	// Tolerates float-encoded amounts.
	var m Money
	if err := json.Unmarshal([]byte("5e4"), &m); err != nil || m.Dong != 50000 {
		t.Fatalf("float decode: dong=%d err=%v", m.Dong, err)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{999, "999"},
		{550000, "550.000"},
		{475000000, "475.000.000"},
		{-5000, "-5.000"},
	}
	for _, tc := range cases {
		if got := (Money{Dong: tc.in}).String(); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Dong: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Dong: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}
