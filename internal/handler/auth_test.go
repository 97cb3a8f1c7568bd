package handler

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSelfRegistrationAlwaysGuest(t *testing.T) {
	if selfRegisterRole != "guest" {
		t.Fatalf("selfRegisterRole = %q, want guest", selfRegisterRole)
	}
	// The registration request must not accept a role at all; a body
	// claiming one binds cleanly with the claim dropped.
	if _, ok := reflect.TypeOf(registerReq{}).FieldByName("Role"); ok {
		t.Fatal("registerReq has a Role field; self-registration must not accept one")
	}
	body := []byte(`{"name":"Asha","email":"asha@example.com","password":"longenough","role":"admin"}`)
	var req registerReq
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Name != "Asha" || req.Email != "asha@example.com" {
		t.Fatalf("bound request = %+v", req)
	}
}

func TestRoleChangeValidation(t *testing.T) {
	val := NewValidator()
	cases := []struct {
		role string
		ok   bool
	}{
		{"admin", true},
		{"owner", true},
		{"manager", true},
		{"guest", true},
		{"superuser", false},
		{"ADMIN", false},
		{"", false},
	}
	for _, tc := range cases {
		err := val.Validate(&roleReq{Role: tc.role})
		if (err == nil) != tc.ok {
			t.Errorf("Validate(role=%q) err=%v, want ok=%v", tc.role, err, tc.ok)
		}
	}
}
