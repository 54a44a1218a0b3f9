package dto

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domains/booking/model"
	listingModel "stayhub/internal/domains/listing/model"
	userDto "stayhub/internal/domains/user/model/dto"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

const msgInvalidDateFormat = "Date has wrong format. Use YYYY-MM-DD."

type CreateBookingRequest struct {
	ListingID       string `json:"listing_id"       validate:"required,uuid4"`
	CheckInDate     string `json:"check_in_date"    validate:"required"`
	CheckOutDate    string `json:"check_out_date"   validate:"required"`
	NumberOfGuests  int    `json:"number_of_guests" validate:"required,gte=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty"`
}

// ParseDates converts the calendar date strings into times in the
// application timezone.
func (r *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.CalendarDateFormat, r.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString(msgInvalidDateFormat) //nolint:wrapcheck
	}

	checkOut, err = timezone.Parse(constant.CalendarDateFormat, r.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString(msgInvalidDateFormat) //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (r *CreateBookingRequest) ToModel(guestID string, listing listingModel.Listing, checkIn, checkOut time.Time) model.Booking {
	now := timezone.Now()
	nights := model.NightsBetween(checkIn, checkOut)

	return model.Booking{
		ID:              uuid.NewString(),
		ListingID:       listing.ID,
		GuestID:         guestID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  r.NumberOfGuests,
		TotalPrice:      float64(nights) * listing.PricePerNight,
		Status:          model.StatusPending,
		SpecialRequests: r.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateBookingRequest carries partial updates. Date fields have no db
// tag: the service re-validates and re-prices the stay before writing
// them. Pointer fields use omitnil so that present-but-empty values
// still hit their constraints.
type UpdateBookingRequest struct {
	CheckInDate     *string `json:"check_in_date"    validate:"omitempty"`
	CheckOutDate    *string `json:"check_out_date"   validate:"omitempty"`
	Status          *string `db:"status"           json:"status"           validate:"omitnil,oneof=pending confirmed cancelled completed"`
	NumberOfGuests  *int    `db:"number_of_guests" json:"number_of_guests" validate:"omitnil,gte=1"`
	SpecialRequests *string `db:"special_requests" json:"special_requests" validate:"omitempty"`
}

// HasDates reports whether the payload touches the stay window.
func (r *UpdateBookingRequest) HasDates() bool {
	return r.CheckInDate != nil || r.CheckOutDate != nil
}

// ParseDates resolves the effective stay window, falling back to the
// booking's current dates for any field the payload omits.
func (r *UpdateBookingRequest) ParseDates(current model.Booking) (checkIn, checkOut time.Time, err error) {
	checkIn = current.CheckInDate
	checkOut = current.CheckOutDate

	if r.CheckInDate != nil {
		checkIn, err = timezone.Parse(constant.CalendarDateFormat, *r.CheckInDate)
		if err != nil {
			return checkIn, checkOut, failure.BadRequestFromString(msgInvalidDateFormat) //nolint:wrapcheck
		}
	}

	if r.CheckOutDate != nil {
		checkOut, err = timezone.Parse(constant.CalendarDateFormat, *r.CheckOutDate)
		if err != nil {
			return checkIn, checkOut, failure.BadRequestFromString(msgInvalidDateFormat) //nolint:wrapcheck
		}
	}

	return checkIn, checkOut, nil
}

func (r *UpdateBookingRequest) ToFieldMap() map[string]any {
	return shared.TransformFields(*r)
}

type GetBookingsRequest struct {
	gDto.QueryParams
	Status    string
	ListingID string
	GuestID   string
}

func (r *GetBookingsRequest) FromRequest(req *http.Request) {
	r.QueryParams.FromRequest(req, true)
	r.SanitizeSort(
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
		model.FieldTotalPrice,
		constant.FieldCreatedAt,
	)

	query := req.URL.Query()

	r.Status = query.Get(model.FieldStatus)
	r.ListingID = query.Get(model.FieldListingID)
	r.GuestID = query.Get(model.FieldGuestID)
}

func (r *GetBookingsRequest) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if r.Status != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    r.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.ListingID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldListingID,
			Value:    r.ListingID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.GuestID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldGuestID,
			Value:    r.GuestID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters}
}

// ListingSummary is the compact listing payload nested into booking
// responses.
type ListingSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	PricePerNight float64 `json:"price_per_night"`
	PropertyType  string  `json:"property_type"`
}

func (s *ListingSummary) FromModel(listing listingModel.Listing) {
	s.ID = listing.ID
	s.Title = listing.Title
	s.City = listing.City
	s.Country = listing.Country
	s.PricePerNight = listing.PricePerNight
	s.PropertyType = listing.PropertyType
}

type BookingResponse struct {
	ID              string               `json:"id"`
	Listing         ListingSummary       `json:"listing"`
	Guest           userDto.UserResponse `json:"guest"`
	CheckInDate     string               `json:"check_in_date"`
	CheckOutDate    string               `json:"check_out_date"`
	NumberOfGuests  int                  `json:"number_of_guests"`
	TotalPrice      float64              `json:"total_price"`
	Status          string               `json:"status"`
	SpecialRequests string               `json:"special_requests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.CheckInDate = timezone.Format(booking.CheckInDate, constant.CalendarDateFormat)
	r.CheckOutDate = timezone.Format(booking.CheckOutDate, constant.CalendarDateFormat)
	r.NumberOfGuests = booking.NumberOfGuests
	r.TotalPrice = booking.TotalPrice
	r.Status = booking.Status
	r.SpecialRequests = booking.SpecialRequests
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
	TotalPage int               `json:"total_page"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking, total, limit int) {
	r.Bookings = make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}

// BookingCreatedEvent is the payload published when a booking is created.
type BookingCreatedEvent struct {
	BookingID      string  `json:"booking_id"`
	ListingID      string  `json:"listing_id"`
	GuestID        string  `json:"guest_id"`
	HostID         string  `json:"host_id"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	NumberOfGuests int     `json:"number_of_guests"`
	TotalPrice     float64 `json:"total_price"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func (e *BookingCreatedEvent) FromModels(booking model.Booking, listing listingModel.Listing) {
	e.BookingID = booking.ID
	e.ListingID = booking.ListingID
	e.GuestID = booking.GuestID
	e.HostID = listing.HostID
	e.CheckInDate = timezone.Format(booking.CheckInDate, constant.CalendarDateFormat)
	e.CheckOutDate = timezone.Format(booking.CheckOutDate, constant.CalendarDateFormat)
	e.NumberOfGuests = booking.NumberOfGuests
	e.TotalPrice = booking.TotalPrice
	e.Status = booking.Status
	e.CreatedAt = timezone.Format(booking.CreatedAt, constant.DateFormat)
}
