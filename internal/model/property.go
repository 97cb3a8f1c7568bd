package model

import "time"

// Property represents a bookable vacation-rental unit from the
// `properties` table.  Ownership and management are many-to-many
// associations kept in property_owners and managers_properties.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – short human-readable code (unique).
//  Name      – display name.
//  Address, City, State, Pincode – location fields (nullable).
//  Lat, Lng  – coordinates (nullable).
//  Timezone  – IANA timezone name (nullable).
//  Bedrooms, Bathrooms – room counts (nullable).
//  MaxGuests – capacity; reservations may not exceed it.
//  HasPool, HasLawn – amenity flags.
//  Active    – inactive properties are hidden from every scope.
//  CreatedBy – profile that created the record (nullable).
type Property struct {
	ID        uint64    // properties.id
	Code      string    // properties.code
	Name      string    // properties.name
	Address   *string   // properties.address (nullable)
	City      *string   // properties.city (nullable)
	State     *string   // properties.state (nullable)
	Pincode   *string   // properties.pincode (nullable)
	Lat       *float64  // properties.lat (nullable)
	Lng       *float64  // properties.lng (nullable)
	Timezone  *string   // properties.timezone (nullable)
	Bedrooms  *int      // properties.bedrooms (nullable)
	Bathrooms *int      // properties.bathrooms (nullable)
	MaxGuests int       // properties.max_guests
	HasPool   bool      // properties.has_pool
	HasLawn   bool      // properties.has_lawn
	Active    bool      // properties.active
	CreatedBy *uint64   // properties.created_by (nullable)
	CreatedAt time.Time // properties.created_at
	UpdatedAt time.Time // properties.updated_at
}

// PropertyOwner joins a property to an owner record.
type PropertyOwner struct {
	ID         uint64    // property_owners.id
	PropertyID uint64    // property_owners.property_id
	OwnerID    uint64    // property_owners.owner_id
	CreatedAt  time.Time // property_owners.created_at
}

// ManagerProperty assigns a manager profile to a property.
type ManagerProperty struct {
	ID         uint64    // managers_properties.id
	PropertyID uint64    // managers_properties.property_id
	ManagerID  uint64    // managers_properties.manager_id
	CreatedAt  time.Time // managers_properties.created_at
}
