package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	kafkaMocks "stayhub/infras/kafka/mocks"
	otelMocks "stayhub/infras/otel/mocks"
	"stayhub/internal/domains/booking/mocks"
	"stayhub/internal/domains/booking/model"
	"stayhub/internal/domains/booking/model/dto"
	listingMocks "stayhub/internal/domains/listing/mocks"
	listingModel "stayhub/internal/domains/listing/model"
	userMocks "stayhub/internal/domains/user/mocks"
	userModel "stayhub/internal/domains/user/model"
	"stayhub/shared/cache"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
)

type serviceFixture struct {
	service     Booking
	repo        *mocks.MockBooking
	listingRepo *listingMocks.MockListing
	userRepo    *userMocks.MockUser
	redisCache  *cacheMocks.MockRedisCache
	producer    *kafkaMocks.MockProducer
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := mocks.NewMockBooking(ctrl)
	listingRepo := listingMocks.NewMockListing(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	producer := kafkaMocks.NewMockProducer(ctrl)

	// Reads always miss the cache here so the repository paths are exercised.
	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return serviceFixture{
		service:     New(repo, listingRepo, userRepo, redisCache, producer, &config.Config{}, otelMocks.NewOtel()),
		repo:        repo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		redisCache:  redisCache,
		producer:    producer,
	}
}

func availableListing() listingModel.Listing {
	return listingModel.Listing{
		ID:            "listing-1",
		Title:         "Cozy Cabin",
		PricePerNight: 100,
		MaxGuests:     4,
		IsAvailable:   true,
		HostID:        "host-1",
	}
}

func TestBookingCreate(t *testing.T) {
	validRequest := dto.CreateBookingRequest{
		ListingID:      "listing-1",
		CheckInDate:    "2026-07-01",
		CheckOutDate:   "2026-07-04",
		NumberOfGuests: 2,
	}

	t.Run("creates pending booking priced per night", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		var inserted model.Booking

		fixture.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				inserted = booking
				return nil
			})

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1", Username: "guest"}, nil)

		res, err := fixture.service.Create(context.Background(), validRequest, "guest-1")

		require.NoError(t, err)
		assert.Equal(t, "guest-1", inserted.GuestID)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.InDelta(t, 300.0, inserted.TotalPrice, 0.001)
		assert.Equal(t, "2026-07-01", res.CheckInDate)
		assert.Equal(t, "guest", res.Guest.Username)
		assert.Equal(t, "Cozy Cabin", res.Listing.Title)
	})

	t.Run("rejects check-out on or before check-in", func(t *testing.T) {
		fixture := newServiceFixture(t)

		req := validRequest
		req.CheckOutDate = req.CheckInDate

		_, err := fixture.service.Create(context.Background(), req, "guest-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Check-out date must be after check-in date.", err.Error())
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		fixture := newServiceFixture(t)

		req := validRequest
		req.CheckInDate = "07/01/2026"

		_, err := fixture.service.Create(context.Background(), req, "guest-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("rejects unknown listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listingModel.Listing{}, nil)

		_, err := fixture.service.Create(context.Background(), validRequest, "guest-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Listing not found.", err.Error())
	})

	t.Run("rejects unavailable listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		listing := availableListing()
		listing.IsAvailable = false

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listing, nil)

		_, err := fixture.service.Create(context.Background(), validRequest, "guest-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "This listing is not available for booking.", err.Error())
	})

	t.Run("rejects party larger than listing capacity", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		req := validRequest
		req.NumberOfGuests = 5

		_, err := fixture.service.Create(context.Background(), req, "guest-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Number of guests cannot exceed 4.", err.Error())
	})
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:             "booking-1",
		ListingID:      "listing-1",
		GuestID:        "guest-1",
		CheckInDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
		TotalPrice:     300,
		Status:         model.StatusPending,
	}
}

func TestBookingGet(t *testing.T) {
	t.Run("guest retrieves own booking", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1"}, nil)

		res, err := fixture.service.Get(context.Background(), "booking-1", "guest-1", constant.RoleUser)

		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("listing host retrieves booking for own listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1"}, nil)

		_, err := fixture.service.Get(context.Background(), "booking-1", "host-1", constant.RoleUser)

		require.NoError(t, err)
	})

	t.Run("unrelated user sees not found", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		_, err := fixture.service.Get(context.Background(), "booking-1", "user-2", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Equal(t, "Booking not found.", err.Error())
	})
}

func TestBookingGetAll(t *testing.T) {
	t.Run("non-admin is scoped to own bookings", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "guest-1", args[model.FieldGuestID])
				return []model.Booking{}, nil
			})

		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		res, err := fixture.service.GetAll(context.Background(), dto.GetBookingsRequest{}, "guest-1", constant.RoleUser)

		require.NoError(t, err)
		assert.Empty(t, res.Bookings)
	})

	t.Run("admin sees every booking", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.NotContains(t, args, model.FieldGuestID)
				return []model.Booking{pendingBooking()}, nil
			})

		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		fixture.listingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]listingModel.Listing{availableListing()}, nil)

		fixture.userRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{{ID: "guest-1", Username: "guest"}}, nil)

		res, err := fixture.service.GetAll(context.Background(), dto.GetBookingsRequest{}, "admin-1", constant.RoleAdmin)

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "Cozy Cabin", res.Bookings[0].Listing.Title)
		assert.Equal(t, "guest", res.Bookings[0].Guest.Username)
	})
}

func TestBookingUpdate(t *testing.T) {
	status := model.StatusConfirmed

	t.Run("listing host confirms booking", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, status, fields[model.FieldStatus])
				return nil
			})

		updated := pendingBooking()
		updated.Status = status

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(updated, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1"}, nil)

		res, err := fixture.service.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{Status: &status}, "host-1", constant.RoleUser)

		require.NoError(t, err)
		assert.Equal(t, status, res.Status)
	})

	t.Run("changing the stay window re-prices the booking", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, model.FieldCheckInDate)
				assert.Contains(t, fields, model.FieldCheckOutDate)
				assert.InDelta(t, 500.0, fields[model.FieldTotalPrice], 0.001)
				return nil
			})

		updated := pendingBooking()
		updated.CheckOutDate = time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
		updated.TotalPrice = 500

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(updated, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1"}, nil)

		checkOut := "2026-07-06"

		res, err := fixture.service.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckOutDate: &checkOut}, "guest-1", constant.RoleUser)

		require.NoError(t, err)
		assert.Equal(t, "2026-07-06", res.CheckOutDate)
		assert.InDelta(t, 500.0, res.TotalPrice, 0.001)
	})

	t.Run("rejects a reordered stay window", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		checkOut := "2026-07-01"

		_, err := fixture.service.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{CheckOutDate: &checkOut}, "guest-1", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Check-out date must be after check-in date.", err.Error())
	})

	t.Run("unrelated user is rejected", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		_, err := fixture.service.Update(context.Background(), "booking-1", dto.UpdateBookingRequest{Status: &status}, "user-2", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Equal(t, "You can only update your own bookings or bookings for your listings.", err.Error())
	})
}

func TestBookingDelete(t *testing.T) {
	t.Run("guest cancels own booking", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.service.Delete(context.Background(), "booking-1", "guest-1", constant.RoleUser)

		require.NoError(t, err)
	})

	t.Run("unrelated user is rejected", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		err := fixture.service.Delete(context.Background(), "booking-1", "user-2", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingListingBookings(t *testing.T) {
	t.Run("requires a listing id", func(t *testing.T) {
		fixture := newServiceFixture(t)

		_, err := fixture.service.ListingBookings(context.Background(), "", dto.GetBookingsRequest{}, "host-1", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Listing ID required.", err.Error())
	})

	t.Run("unknown listing yields not found", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listingModel.Listing{}, nil)

		_, err := fixture.service.ListingBookings(context.Background(), "missing", dto.GetBookingsRequest{}, "host-1", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("only the host may list bookings", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		_, err := fixture.service.ListingBookings(context.Background(), "listing-1", dto.GetBookingsRequest{}, "user-2", constant.RoleUser)

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Equal(t, "You can only view bookings for your own listings.", err.Error())
	})

	t.Run("host lists bookings for own listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableListing(), nil)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "listing-1", args[model.FieldListingID])
				return []model.Booking{}, nil
			})

		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		_, err := fixture.service.ListingBookings(context.Background(), "listing-1", dto.GetBookingsRequest{}, "host-1", constant.RoleUser)

		require.NoError(t, err)
	})
}
