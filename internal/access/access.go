// Package access resolves which properties a caller may see.  Every
// repository query over reservations or analytics takes the resolved
// Scope as an explicit filter; nothing in the application queries those
// tables unscoped.  The scope is an application-layer pre-filter — the
// database's own grants remain the authoritative enforcement point.
package access

import "context"

// Role values stored in the profiles table and the JWT "role" claim.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleGuest   Role = "guest"
)

// ParseRole normalizes a role string; anything unknown maps to RoleGuest.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleOwner, RoleManager:
		return Role(s)
	}
	return RoleGuest
}

// Scope is the set of property identifiers a caller may act on.  All is
// the administrator sentinel meaning "every active property"; otherwise
// PropertyIDs is the explicit allow-list, possibly empty.
type Scope struct {
	All         bool
	PropertyIDs []uint64
}

// Unrestricted is the admin scope.
func Unrestricted() Scope { return Scope{All: true} }

// Empty reports whether the scope permits nothing.
func (s Scope) Empty() bool { return !s.All && len(s.PropertyIDs) == 0 }

// Allows reports whether the scope covers the given property.
func (s Scope) Allows(propertyID uint64) bool {
	if s.All {
		return true
	}
	for _, id := range s.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

// AllowsAny reports whether the scope covers at least one of the given
// properties.  False for an empty id list unless the scope is
// unrestricted.
func (s Scope) AllowsAny(propertyIDs []uint64) bool {
	if s.All {
		return true
	}
	for _, id := range propertyIDs {
		if s.Allows(id) {
			return true
		}
	}
	return false
}

// PropertySource supplies the property-association lookups backing scope
// resolution.  All three restrict to active properties.
type PropertySource interface {
	OwnedPropertyIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ManagedPropertyIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// Resolve maps (role, user) to a Scope: admins see everything, owners
// see properties joined to an owner record for their account, managers
// see their assigned properties, and every other role sees nothing.
func Resolve(ctx context.Context, role Role, userID uint64, src PropertySource) (Scope, error) {
	switch role {
	case RoleAdmin:
		return Unrestricted(), nil
	case RoleOwner:
		ids, err := src.OwnedPropertyIDs(ctx, userID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{PropertyIDs: ids}, nil
	case RoleManager:
		ids, err := src.ManagedPropertyIDs(ctx, userID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{PropertyIDs: ids}, nil
	}
	return Scope{}, nil
}
