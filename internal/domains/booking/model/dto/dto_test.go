package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domains/booking/model"
	"stayhub/internal/domains/booking/model/dto"
	listingModel "stayhub/internal/domains/listing/model"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
)

func TestCreateBookingRequestToModel(t *testing.T) {
	listing := listingModel.Listing{ID: "listing-1", PricePerNight: 100, HostID: "host-1"}

	t.Run("prices the stay per night", func(t *testing.T) {
		req := dto.CreateBookingRequest{ListingID: "listing-1", NumberOfGuests: 2}

		booking := req.ToModel(
			"guest-1",
			listing,
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		)

		assert.Equal(t, model.StatusPending, booking.Status)
		assert.InDelta(t, 300.0, booking.TotalPrice, 0.001)
	})

	t.Run("prices a stay across a spring-forward transition in full", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		req := dto.CreateBookingRequest{ListingID: "listing-1", NumberOfGuests: 2}

		booking := req.ToModel(
			"guest-1",
			listing,
			time.Date(2026, 3, 7, 0, 0, 0, 0, loc),
			time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		)

		assert.InDelta(t, 300.0, booking.TotalPrice, 0.001)
	})
}

func TestUpdateBookingRequestValidation(t *testing.T) {
	t.Run("accepts a valid partial payload", func(t *testing.T) {
		status := model.StatusConfirmed

		assert.NoError(t, validator.ValidateStruct(&dto.UpdateBookingRequest{Status: &status}))
	})

	t.Run("rejects an empty status", func(t *testing.T) {
		status := ""

		err := validator.ValidateStruct(&dto.UpdateBookingRequest{Status: &status})

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("rejects zero guests", func(t *testing.T) {
		guests := 0

		err := validator.ValidateStruct(&dto.UpdateBookingRequest{NumberOfGuests: &guests})

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestUpdateBookingRequestParseDates(t *testing.T) {
	current := model.Booking{
		CheckInDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	}

	t.Run("falls back to the current dates for omitted fields", func(t *testing.T) {
		checkOut := "2026-07-06"
		req := dto.UpdateBookingRequest{CheckOutDate: &checkOut}

		gotIn, gotOut, err := req.ParseDates(current)

		require.NoError(t, err)
		assert.Equal(t, current.CheckInDate, gotIn)
		assert.Equal(t, "2026-07-06", gotOut.Format("2006-01-02"))
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		checkIn := "07/01/2026"
		req := dto.UpdateBookingRequest{CheckInDate: &checkIn}

		_, _, err := req.ParseDates(current)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Date has wrong format. Use YYYY-MM-DD.", err.Error())
	})
}

func TestGetBookingsRequestFromRequest(t *testing.T) {
	req := dto.GetBookingsRequest{}
	req.FromRequest(httptest.NewRequest("GET", "/v1/bookings?status=confirmed&listing_id=listing-1&guest_id=guest-1", nil))

	assert.Equal(t, "confirmed", req.Status)
	assert.Equal(t, "listing-1", req.ListingID)
	assert.Equal(t, "guest-1", req.GuestID)
}
