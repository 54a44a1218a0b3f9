package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/shared/constant"
)

func TestBookingNights(t *testing.T) {
	t.Run("counts calendar nights", func(t *testing.T) {
		booking := Booking{
			CheckInDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		}

		assert.Equal(t, 4, booking.Nights())
	})

	t.Run("a spring-forward transition does not lose a night", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 2026-03-08 is the DST switch: this window spans only 71 hours.
		booking := Booking{
			CheckInDate:  time.Date(2026, 3, 7, 0, 0, 0, 0, loc),
			CheckOutDate: time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		}

		assert.Equal(t, 3, booking.Nights())
	})

	t.Run("a fall-back transition does not add a night", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		booking := Booking{
			CheckInDate:  time.Date(2026, 10, 31, 0, 0, 0, 0, loc),
			CheckOutDate: time.Date(2026, 11, 3, 0, 0, 0, 0, loc),
		}

		assert.Equal(t, 3, booking.Nights())
	})
}

func TestBookingCanManage(t *testing.T) {
	booking := Booking{ID: "booking-1", GuestID: "guest-1", ListingID: "listing-1"}

	t.Run("guest can manage own booking", func(t *testing.T) {
		assert.True(t, booking.CanManage("guest-1", constant.RoleUser, "host-1"))
	})

	t.Run("listing host can manage booking", func(t *testing.T) {
		assert.True(t, booking.CanManage("host-1", constant.RoleUser, "host-1"))
	})

	t.Run("admin can manage any booking", func(t *testing.T) {
		assert.True(t, booking.CanManage("admin-1", constant.RoleAdmin, "host-1"))
	})

	t.Run("unrelated user cannot manage booking", func(t *testing.T) {
		assert.False(t, booking.CanManage("user-2", constant.RoleUser, "host-1"))
	})
}
