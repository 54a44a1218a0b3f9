package model

import (
	"time"

	"stayhub/shared/constant"
	"stayhub/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldListingID       = "listing_id"
	FieldGuestID         = "guest_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldNumberOfGuests  = "number_of_guests"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Booking struct {
	ID              string    `db:"id"`
	ListingID       string    `db:"listing_id"`
	GuestID         string    `db:"guest_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	NumberOfGuests  int       `db:"number_of_guests"`
	TotalPrice      float64   `db:"total_price"`
	Status          string    `db:"status"`
	SpecialRequests string    `db:"special_requests"`
	model.Metadata
}

// IsFound reports whether the booking was loaded from storage.
func (b *Booking) IsFound() bool {
	return b.ID != ""
}

// Nights returns the length of the stay in nights.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckInDate, b.CheckOutDate)
}

// NightsBetween counts calendar nights between two dates. The dates are
// normalized to UTC midnight first so that DST transitions in the
// application timezone cannot shorten or stretch a stay.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}

// CanManage reports whether the given user may mutate this booking. The
// guest that made it, the host of the booked listing and administrators
// qualify.
func (b *Booking) CanManage(userID, role, listingHostID string) bool {
	return b.GuestID == userID || listingHostID == userID || role == constant.RoleAdmin
}
