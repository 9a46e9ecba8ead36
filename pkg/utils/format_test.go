package utils

import "testing"

func TestFormatGrouped(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.999, "1,000.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-9876543.21, "-9,876,543.21"},
		{100, "100.00"},
		{1000, "1,000.00"},
	}
	for _, c := range cases {
		if got := FormatGrouped(c.in); got != c.want {
			t.Errorf("FormatGrouped(%v): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(-2.1359411); got != "-2.136" {
		t.Errorf("got %q", got)
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.0); got != "1.000" {
		t.Errorf("got %q", got)
	}
}
