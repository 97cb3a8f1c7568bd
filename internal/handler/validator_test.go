package handler

import "testing"

type pincodeInput struct {
	Pincode string `validate:"pincode"`
}

type phoneInput struct {
	Phone string `validate:"inphone"`
}

func TestPincodeRule(t *testing.T) {
	val := NewValidator()
	cases := []struct {
		in string
		ok bool
	}{
		{"110001", true},
		{"560034", true},
		{"012345", false}, // leading zero
		{"11000", false},  // too short
		{"1100011", false},
		{"11000a", false},
	}
	for _, tc := range cases {
		err := val.Validate(pincodeInput{Pincode: tc.in})
		if (err == nil) != tc.ok {
			t.Errorf("pincode %q: got err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}

func TestPhoneRule(t *testing.T) {
	val := NewValidator()
	cases := []struct {
		in string
		ok bool
	}{
		{"+919876543210", true},
		{"9876543210", true},
		{"+91 98765 43210", true},
		{"(987) 654-3210", true},
		{"0123", false}, // leading zero
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		err := val.Validate(phoneInput{Phone: tc.in})
		if (err == nil) != tc.ok {
			t.Errorf("phone %q: got err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}
