package model

import "time"

// Guest identifies a person staying at a property.  Guests are shared
// across reservations; KYC documents hang off guest_ids.
type Guest struct {
	ID        uint64    // guests.id
	Name      string    // guests.name
	Email     string    // guests.email
	Phone     *string   // guests.phone (nullable)
	Address   *string   // guests.address (nullable)
	City      *string   // guests.city (nullable)
	State     *string   // guests.state (nullable)
	Pincode   *string   // guests.pincode (nullable)
	DOB       *string   // guests.dob (nullable, YYYY-MM-DD)
	CreatedAt time.Time // guests.created_at
}

// Accepted identity document types for KYC.
const (
	IDTypeAadhaar  = "aadhaar"
	IDTypePassport = "passport"
	IDTypeDL       = "dl"
	IDTypeOther    = "other"
)

// GuestID is an uploaded identity document tied to a guest and a
// reservation.  DeleteAfter drives retention: documents past that date
// are purged from object storage.
type GuestID struct {
	ID            uint64     // guest_ids.id
	GuestID       uint64     // guest_ids.guest_id
	ReservationID uint64     // guest_ids.reservation_id
	IDType        string     // guest_ids.id_type
	IDNumber      string     // guest_ids.id_number
	FileURL       *string    // guest_ids.file_url (nullable)
	Verified      bool       // guest_ids.verified
	CollectedAt   *time.Time // guest_ids.collected_at (nullable)
	DeleteAfter   time.Time  // guest_ids.delete_after
	CreatedAt     time.Time  // guest_ids.created_at
}
