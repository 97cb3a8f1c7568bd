package access

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	owned   []uint64
	managed []uint64
	err     error
}

func (f *fakeSource) OwnedPropertyIDs(_ context.Context, _ uint64) ([]uint64, error) {
	return f.owned, f.err
}

func (f *fakeSource) ManagedPropertyIDs(_ context.Context, _ uint64) ([]uint64, error) {
	return f.managed, f.err
}

func TestResolveAdmin(t *testing.T) {
	s, err := Resolve(context.Background(), RoleAdmin, 1, &fakeSource{})
	if err != nil {
		t.Fatal(err)
	}
	if !s.All {
		t.Fatal("admin scope should be unrestricted")
	}
	if !s.Allows(999) {
		t.Fatal("unrestricted scope should allow any property")
	}
}

func TestResolveOwner(t *testing.T) {
	src := &fakeSource{owned: []uint64{3, 7}}
	s, err := Resolve(context.Background(), RoleOwner, 1, src)
	if err != nil {
		t.Fatal(err)
	}
	if s.All {
		t.Fatal("owner scope must not be unrestricted")
	}
	if !s.Allows(3) || !s.Allows(7) || s.Allows(4) {
		t.Fatalf("owner scope wrong: %+v", s)
	}
}

func TestResolveManager(t *testing.T) {
	src := &fakeSource{managed: []uint64{12}}
	s, err := Resolve(context.Background(), RoleManager, 1, src)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Allows(12) || s.Allows(3) {
		t.Fatalf("manager scope wrong: %+v", s)
	}
}

func TestResolveGuestEmpty(t *testing.T) {
	s, err := Resolve(context.Background(), RoleGuest, 1, &fakeSource{owned: []uint64{1}})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Empty() {
		t.Fatal("guest scope should be empty")
	}
	if s.Allows(1) {
		t.Fatal("empty scope must allow nothing")
	}
}

func TestResolvePropagatesError(t *testing.T) {
	want := errors.New("db down")
	if _, err := Resolve(context.Background(), RoleOwner, 1, &fakeSource{err: want}); !errors.Is(err, want) {
		t.Fatalf("got %v, want db error", err)
	}
}

func TestScopeAllowsAny(t *testing.T) {
	restricted := Scope{PropertyIDs: []uint64{3, 7}}
	cases := []struct {
		name  string
		scope Scope
		ids   []uint64
		want  bool
	}{
		{"unrestricted covers anything", Scope{All: true}, []uint64{99}, true},
		{"unrestricted covers empty list", Scope{All: true}, nil, true},
		{"one id in scope", restricted, []uint64{5, 7}, true},
		{"no id in scope", restricted, []uint64{5, 9}, false},
		{"empty list", restricted, nil, false},
		{"empty scope", Scope{}, []uint64{3}, false},
	}
	for _, tc := range cases {
		if got := tc.scope.AllowsAny(tc.ids); got != tc.want {
			t.Errorf("%s: AllowsAny(%v) = %v, want %v", tc.name, tc.ids, got, tc.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":   RoleAdmin,
		"owner":   RoleOwner,
		"manager": RoleManager,
		"guest":   RoleGuest,
		"root":    RoleGuest,
		"":        RoleGuest,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %s, want %s", in, got, want)
		}
	}
}
