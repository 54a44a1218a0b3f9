package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/kafka"
	"stayhub/infras/otel"
	"stayhub/internal/domains/booking/model"
	"stayhub/internal/domains/booking/model/dto"
	"stayhub/internal/domains/booking/repository"
	listingModel "stayhub/internal/domains/listing/model"
	listingRepository "stayhub/internal/domains/listing/repository"
	userModel "stayhub/internal/domains/user/model"
	userRepository "stayhub/internal/domains/user/repository"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
)

const (
	cacheKeyPrefix = "bookings"
)

const (
	msgCheckOutAfterCheckIn = "Check-out date must be after check-in date."
	msgListingNotFound      = "Listing not found."
	msgListingNotAvailable  = "This listing is not available for booking."
	msgTooManyGuests        = "Number of guests cannot exceed %d."
	msgBookingNotFound      = "Booking not found."
	msgManageOwnBooking     = "You can only update your own bookings or bookings for your listings."
	msgDeleteOwnBooking     = "You can only delete your own bookings or bookings for your listings."
	msgViewOwnListing       = "You can only view bookings for your own listings."
	msgListingIDRequired    = "Listing ID required."
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, guestID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req dto.GetBookingsRequest, userID, role string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id, userID, role string) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest, userID, role string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id, userID, role string) error
	ListingBookings(ctx context.Context, listingID string, req dto.GetBookingsRequest, userID, role string) (dto.GetBookingsResponse, error)
}

type bookingServiceImpl struct {
	repository        repository.Booking
	listingRepository listingRepository.Listing
	userRepository    userRepository.User
	cache             cache.RedisCache
	producer          kafka.Producer
	config            *config.Config
	otel              otel.Otel
}

func New(
	repo repository.Booking,
	listingRepo listingRepository.Listing,
	userRepo userRepository.User,
	redisCache cache.RedisCache,
	producer kafka.Producer,
	cfg *config.Config,
	otl otel.Otel,
) Booking {
	return &bookingServiceImpl{
		repository:        repo,
		listingRepository: listingRepo,
		userRepository:    userRepo,
		cache:             redisCache,
		producer:          producer,
		config:            cfg,
		otel:              otl,
	}
}

func (svc *bookingServiceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, guestID string) (res dto.BookingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString(msgCheckOutAfterCheckIn) //nolint:wrapcheck
	}

	listing, err := svc.listingRepository.Get(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if !listing.IsFound() {
		return res, failure.BadRequestFromString(msgListingNotFound) //nolint:wrapcheck
	}

	if !listing.IsAvailable {
		return res, failure.BadRequestFromString(msgListingNotAvailable) //nolint:wrapcheck
	}

	if req.NumberOfGuests > listing.MaxGuests {
		return res, failure.BadRequestFromString(fmt.Sprintf(msgTooManyGuests, listing.MaxGuests)) //nolint:wrapcheck
	}

	booking := req.ToModel(guestID, listing, checkIn, checkOut)

	if err = svc.repository.Insert(ctx, booking); err != nil {
		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	svc.publishCreated(ctx, booking, listing)

	return svc.buildResponse(ctx, booking, listing)
}

func (svc *bookingServiceImpl) GetAll(ctx context.Context, req dto.GetBookingsRequest, userID, role string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Non-admins only ever see the bookings they made themselves.
	if role != constant.RoleAdmin {
		req.GuestID = userID
	}

	return svc.listBookings(ctx, req)
}

func (svc *bookingServiceImpl) Get(ctx context.Context, id, userID, role string) (res dto.BookingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, listing, err := svc.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	// Bookings outside the caller's scope are indistinguishable from
	// missing ones.
	if !booking.CanManage(userID, role, listing.HostID) {
		return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	return svc.buildResponse(ctx, booking, listing)
}

func (svc *bookingServiceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest, userID, role string) (res dto.BookingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, listing, err := svc.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.CanManage(userID, role, listing.HostID) {
		return res, failure.Forbidden(msgManageOwnBooking) //nolint:wrapcheck
	}

	if req.NumberOfGuests != nil && *req.NumberOfGuests > listing.MaxGuests {
		return res, failure.BadRequestFromString(fmt.Sprintf(msgTooManyGuests, listing.MaxGuests)) //nolint:wrapcheck
	}

	fields := req.ToFieldMap()

	// A changed stay window is re-validated and re-priced like a new one.
	if req.HasDates() {
		checkIn, checkOut, dateErr := req.ParseDates(booking)
		if dateErr != nil {
			return res, dateErr
		}

		if !checkOut.After(checkIn) {
			return res, failure.BadRequestFromString(msgCheckOutAfterCheckIn) //nolint:wrapcheck
		}

		fields[model.FieldCheckInDate] = checkIn
		fields[model.FieldCheckOutDate] = checkOut
		fields[model.FieldTotalPrice] = float64(model.NightsBetween(checkIn, checkOut)) * listing.PricePerNight
	}

	if err = svc.repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	svc.invalidate(ctx, id)

	updated, err := svc.repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	return svc.buildResponse(ctx, updated, listing)
}

func (svc *bookingServiceImpl) Delete(ctx context.Context, id, userID, role string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, listing, err := svc.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if !booking.CanManage(userID, role, listing.HostID) {
		return failure.Forbidden(msgDeleteOwnBooking) //nolint:wrapcheck
	}

	if err = svc.repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	svc.invalidate(ctx, id)

	return nil
}

func (svc *bookingServiceImpl) ListingBookings(ctx context.Context, listingID string, req dto.GetBookingsRequest, userID, role string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListingBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if listingID == "" {
		return res, failure.BadRequestFromString(msgListingIDRequired) //nolint:wrapcheck
	}

	listing, err := svc.listingRepository.Get(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if !listing.IsFound() {
		return res, failure.NotFound(msgListingNotFound) //nolint:wrapcheck
	}

	if listing.HostID != userID && role != constant.RoleAdmin {
		return res, failure.Forbidden(msgViewOwnListing) //nolint:wrapcheck
	}

	req.ListingID = listingID
	req.GuestID = ""

	return svc.listBookings(ctx, req)
}

func (svc *bookingServiceImpl) listBookings(ctx context.Context, req dto.GetBookingsRequest) (res dto.GetBookingsResponse, err error) {
	filter := req.ToFilterGroup()

	bookings, err := svc.repository.GetAll(ctx, req.QueryParams, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	total, err := svc.repository.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	if err = svc.hydrate(ctx, bookings, res.Bookings); err != nil {
		return res, err
	}

	return res, nil
}

// getBooking loads a booking and the listing it belongs to. Only the raw
// booking row is cached; ownership checks run on every read.
func (svc *bookingServiceImpl) getBooking(ctx context.Context, id string) (model.Booking, listingModel.Listing, error) {
	var (
		booking model.Booking
		listing listingModel.Listing
		err     error
	)

	cacheKey := svc.cacheKey(id)

	if cacheErr := svc.cache.Get(ctx, cacheKey, &booking); cacheErr != nil {
		booking, err = svc.repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return booking, listing, fmt.Errorf("failed to get booking: %w", err)
		}

		if !booking.IsFound() {
			return booking, listing, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
		}

		if cacheErr := svc.cache.Save(ctx, cacheKey, booking, svc.config.Cache.TTL); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache booking")
		}
	}

	listing, err = svc.listingRepository.Get(ctx, shared.FilterByID(booking.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		return booking, listing, fmt.Errorf("failed to get listing: %w", err)
	}

	return booking, listing, nil
}

func (svc *bookingServiceImpl) cacheKey(id string) string {
	return shared.BuildCacheKey(cacheKeyPrefix, model.FieldID, id)
}

func (svc *bookingServiceImpl) invalidate(ctx context.Context, id string) {
	if err := svc.cache.Delete(ctx, svc.cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to invalidate booking cache")
	}
}

func (svc *bookingServiceImpl) buildResponse(ctx context.Context, booking model.Booking, listing listingModel.Listing) (res dto.BookingResponse, err error) {
	res.FromModel(booking)
	res.Listing.FromModel(listing)

	guest, err := svc.userRepository.Get(ctx, shared.FilterByID(booking.GuestID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get booking guest: %w", err)
	}

	res.Guest.FromModel(guest)

	return res, nil
}

// hydrate fills nested listing and guest payloads with batched lookups.
func (svc *bookingServiceImpl) hydrate(ctx context.Context, bookings []model.Booking, responses []dto.BookingResponse) error {
	if len(bookings) == 0 {
		return nil
	}

	listingIDs := make([]string, 0, len(bookings))
	guestIDs := make([]string, 0, len(bookings))
	seenListing := map[string]bool{}
	seenGuest := map[string]bool{}

	for _, booking := range bookings {
		if !seenListing[booking.ListingID] {
			seenListing[booking.ListingID] = true
			listingIDs = append(listingIDs, booking.ListingID)
		}

		if !seenGuest[booking.GuestID] {
			seenGuest[booking.GuestID] = true
			guestIDs = append(guestIDs, booking.GuestID)
		}
	}

	listings, err := svc.listingRepository.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    listingModel.FieldID,
				Value:    listingIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    listingModel.TableName,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get booking listings: %w", err)
	}

	guests, err := svc.userRepository.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldID,
				Value:    guestIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    userModel.TableName,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get booking guests: %w", err)
	}

	listingByID := make(map[string]listingModel.Listing, len(listings))
	for _, listing := range listings {
		listingByID[listing.ID] = listing
	}

	guestByID := make(map[string]userModel.User, len(guests))
	for _, guest := range guests {
		guestByID[guest.ID] = guest
	}

	for i, booking := range bookings {
		responses[i].Listing.FromModel(listingByID[booking.ListingID])
		responses[i].Guest.FromModel(guestByID[booking.GuestID])
	}

	return nil
}

// publishCreated emits the booking created event. Delivery problems are
// logged, never surfaced to the caller.
func (svc *bookingServiceImpl) publishCreated(ctx context.Context, booking model.Booking, listing listingModel.Listing) {
	event := dto.BookingCreatedEvent{}
	event.FromModels(booking, listing)

	if err := svc.producer.Publish(ctx, kafka.Message{Key: booking.ID, Value: event}); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking created event")
	}
}
