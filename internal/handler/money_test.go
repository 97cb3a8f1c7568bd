package handler

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4000", "4000"},
		{"4000.50", "4000.5"},
		{" 250.00 ", "250"},
		{"", "0"},
		{"abc", "0"},
		{"-150", "-150"},
	}
	for _, tc := range cases {
		if got := parseMoney(tc.in).String(); got != tc.want {
			t.Errorf("parseMoney(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
