package model

import "time"

// Profile represents an application account as stored in the `profiles`
// table.  Staff accounts carry one of the roles admin, owner or manager;
// anything else is treated as a guest account with no property scope.
//
// Fields:
//  ID           – primary key identifier.
//  Role         – role name (admin, owner, manager, guest).
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Phone        – contact number (nullable).
//  IsActive     – whether the account may sign in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Profile struct {
	ID           uint64    // profiles.id
	Role         string    // profiles.role
	Name         string    // profiles.name
	Email        string    // profiles.email
	PasswordHash string    // profiles.password_hash
	Phone        *string   // profiles.phone (nullable)
	IsActive     bool      // profiles.is_active
	CreatedAt    time.Time // profiles.created_at
	UpdatedAt    time.Time // profiles.updated_at
}

// Owner is a commercial owner entity from the `owners` table.  An owner
// may or may not be linked to a login account via UserID; properties are
// joined to owners through the property_owners association table.
type Owner struct {
	ID          uint64    // owners.id
	UserID      *uint64   // owners.user_id (nullable)
	CompanyName *string   // owners.company_name (nullable)
	GSTIN       *string   // owners.gstin (nullable)
	Phone       *string   // owners.phone (nullable)
	Email       *string   // owners.email (nullable)
	CreatedAt   time.Time // owners.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
