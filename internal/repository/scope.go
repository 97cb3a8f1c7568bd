package repository

import (
	"strings"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
)

// scopeClause builds the SQL restriction for an access scope on the
// given column.  It returns the fragment (prefixed with " AND "), its
// arguments, and whether querying is worthwhile at all: an empty scope
// yields ok=false and callers must return an empty result without
// touching the database.  An unrestricted scope yields an empty
// fragment.
func scopeClause(column string, scope access.Scope) (clause string, args []any, ok bool) {
	if scope.All {
		return "", nil, true
	}
	if len(scope.PropertyIDs) == 0 {
		return "", nil, false
	}
	placeholders := strings.Repeat("?,", len(scope.PropertyIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args = make([]any, len(scope.PropertyIDs))
	for i, id := range scope.PropertyIDs {
		args[i] = id
	}
	return " AND " + column + " IN (" + placeholders + ")", args, true
}
