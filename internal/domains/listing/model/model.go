package model

import (
	"github.com/lib/pq"

	"stayhub/shared/constant"
	"stayhub/shared/model"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldAddress       = "address"
	FieldCity          = "city"
	FieldState         = "state"
	FieldCountry       = "country"
	FieldZipCode       = "zip_code"
	FieldPricePerNight = "price_per_night"
	FieldPropertyType  = "property_type"
	FieldBedrooms      = "bedrooms"
	FieldBathrooms     = "bathrooms"
	FieldMaxGuests     = "max_guests"
	FieldAmenities     = "amenities"
	FieldImages        = "images"
	FieldIsAvailable   = "is_available"
	FieldHostID        = "host_id"
)

const (
	PropertyTypeHouse     = "house"
	PropertyTypeApartment = "apartment"
	PropertyTypeRoom      = "room"
)

type Listing struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Address       string         `db:"address"`
	City          string         `db:"city"`
	State         string         `db:"state"`
	Country       string         `db:"country"`
	ZipCode       string         `db:"zip_code"`
	PricePerNight float64        `db:"price_per_night"`
	PropertyType  string         `db:"property_type"`
	Bedrooms      int            `db:"bedrooms"`
	Bathrooms     int            `db:"bathrooms"`
	MaxGuests     int            `db:"max_guests"`
	Amenities     pq.StringArray `db:"amenities"`
	Images        pq.StringArray `db:"images"`
	IsAvailable   bool           `db:"is_available"`
	HostID        string         `db:"host_id"`
	model.Metadata
}

// IsFound reports whether the listing was loaded from storage.
func (l *Listing) IsFound() bool {
	return l.ID != ""
}

// CanManage reports whether the given user may mutate this listing.
// Only the host that owns the listing and administrators qualify.
func (l *Listing) CanManage(userID, role string) bool {
	return l.HostID == userID || role == constant.RoleAdmin
}
