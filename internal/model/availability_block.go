package model

import "time"

// AvailabilityBlock is an administratively blocked date range on a
// property, independent of any guest reservation (maintenance, owner
// stay, seasonal closure).  The interval is half-open like a
// reservation's: [StartDate, EndDate).
type AvailabilityBlock struct {
	ID         uint64    // availability_blocks.id
	PropertyID uint64    // availability_blocks.property_id
	StartDate  time.Time // availability_blocks.start_date
	EndDate    time.Time // availability_blocks.end_date
	Reason     *string   // availability_blocks.reason (nullable)
	CreatedBy  *uint64   // availability_blocks.created_by (nullable)
	CreatedAt  time.Time // availability_blocks.created_at
}
