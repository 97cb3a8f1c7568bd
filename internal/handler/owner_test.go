package handler

import "testing"

func strp(s string) *string { return &s }

func TestOwnerRequestValidation(t *testing.T) {
	val := NewValidator()
	cases := []struct {
		name string
		req  ownerReq
		ok   bool
	}{
		{"all optional fields absent", ownerReq{}, true},
		{"valid phone and email", ownerReq{Phone: strp("+91 98765 43210"), Email: strp("ops@hostizzy.com")}, true},
		{"bad phone", ownerReq{Phone: strp("not-a-phone")}, false},
		{"bad email", ownerReq{Email: strp("nope")}, false},
	}
	for _, tc := range cases {
		err := val.Validate(&tc.req)
		if (err == nil) != tc.ok {
			t.Errorf("%s: err=%v, want ok=%v", tc.name, err, tc.ok)
		}
	}
}
