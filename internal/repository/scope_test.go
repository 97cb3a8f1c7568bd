package repository

import (
	"testing"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
)

func TestScopeClauseUnrestricted(t *testing.T) {
	clause, args, ok := scopeClause("r.property_id", access.Unrestricted())
	if !ok {
		t.Fatal("unrestricted scope should allow querying")
	}
	if clause != "" || len(args) != 0 {
		t.Fatalf("unrestricted scope should add no filter, got %q %v", clause, args)
	}
}

func TestScopeClauseEmpty(t *testing.T) {
	if _, _, ok := scopeClause("r.property_id", access.Scope{}); ok {
		t.Fatal("empty scope must short-circuit the query")
	}
}

func TestScopeClauseIDs(t *testing.T) {
	clause, args, ok := scopeClause("r.property_id", access.Scope{PropertyIDs: []uint64{4, 9, 12}})
	if !ok {
		t.Fatal("non-empty scope should allow querying")
	}
	if clause != " AND r.property_id IN (?,?,?)" {
		t.Fatalf("clause = %q", clause)
	}
	if len(args) != 3 || args[0] != uint64(4) || args[2] != uint64(12) {
		t.Fatalf("args = %v", args)
	}
}
