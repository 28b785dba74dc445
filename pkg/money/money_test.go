package money

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"0.00", 0},
		{"1", 100},
		{"30", 3000},
		{"30.5", 3050},
		{"30.50", 3050},
		{"0.01", 1},
		{"-1", -100},
		{"-0.01", -1},
		{"  12.34 ", 1234},
		{"9999999.99", 999999999},
		{"92233720368547758.07", math.MaxInt64},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got.MinorUnits() != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got.MinorUnits(), tc.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		" ",
		".",
		".5",
		"-",
		"1.234", // more than two fractional digits
		"12a",
		"1.2x",
		"1,50",
		"--1",
		"1.2.3",
		// one minor unit past int64
		"92233720368547758.08",
		"922337203685477580.80",
		"99999999999999999999",
		"9223372036854775808",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Parse(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		in   Amount
		want string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{100, "1.00"},
		{3050, "30.50"},
		{-1, "-0.01"},
		{-3050, "-30.50"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Amount(%d).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "0.01", "30.50", "-12.34", "100.00"} {
		a, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := a.String(); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestSigns(t *testing.T) {
	if !Amount(1).IsPositive() || Amount(0).IsPositive() || Amount(-1).IsPositive() {
		t.Error("IsPositive misclassifies")
	}
	if !Amount(-1).IsNegative() || Amount(0).IsNegative() || Amount(1).IsNegative() {
		t.Error("IsNegative misclassifies")
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Balance Amount `json:"balance"`
	}{Balance: 3050})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"balance":30.50}` {
		t.Errorf("unexpected JSON %s", b)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":30.50,"b":"12.34"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != 3050 {
		t.Errorf("bare number: got %d, want 3050", payload.A)
	}
	if payload.B != 1234 {
		t.Errorf("quoted string: got %d, want 1234", payload.B)
	}

	var a Amount
	if err := json.Unmarshal([]byte(`"1.234"`), &a); err == nil {
		t.Error("expected error for over-scaled value")
	}
}
