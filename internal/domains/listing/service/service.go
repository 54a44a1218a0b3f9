package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Listing=MockListingService

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/infras/s3"
	"stayhub/internal/domains/listing/model"
	"stayhub/internal/domains/listing/model/dto"
	"stayhub/internal/domains/listing/repository"
	userModel "stayhub/internal/domains/user/model"
	userRepository "stayhub/internal/domains/user/repository"
	"stayhub/shared"
	"stayhub/shared/cache"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/logger"
	"stayhub/shared/timezone"
)

const (
	cacheKeyPrefix = "listings"
	imageDirectory = "listings"

	msgListingNotFound  = "Listing not found."
	msgUpdateOwnListing = "You can only update your own listings."
	msgDeleteOwnListing = "You can only delete your own listings."
	msgImageOwnListing  = "You can only upload images for your own listings."
)

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest, hostID string) (dto.ListingResponse, error)
	GetAll(ctx context.Context, req dto.GetListingsRequest) (dto.GetListingsResponse, error)
	Get(ctx context.Context, id string) (dto.ListingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateListingRequest, userID, role string) (dto.ListingResponse, error)
	Delete(ctx context.Context, id, userID, role string) error
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest, userID, role string) (dto.ListingResponse, error)
}

type listingServiceImpl struct {
	repository     repository.Listing
	userRepository userRepository.User
	cache          cache.RedisCache
	storage        s3.S3
	config         *config.Config
	otel           otel.Otel
}

func New(
	repo repository.Listing,
	userRepo userRepository.User,
	redisCache cache.RedisCache,
	storage s3.S3,
	cfg *config.Config,
	otl otel.Otel,
) Listing {
	return &listingServiceImpl{
		repository:     repo,
		userRepository: userRepo,
		cache:          redisCache,
		storage:        storage,
		config:         cfg,
		otel:           otl,
	}
}

func (svc *listingServiceImpl) Create(ctx context.Context, req dto.CreateListingRequest, hostID string) (res dto.ListingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	listing := req.ToModel(hostID)

	if err = svc.repository.Insert(ctx, listing); err != nil {
		return res, fmt.Errorf("failed to create listing: %w", err)
	}

	svc.invalidateListCaches(ctx)

	return svc.buildResponse(ctx, listing)
}

func (svc *listingServiceImpl) GetAll(ctx context.Context, req dto.GetListingsRequest) (res dto.GetListingsResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := req.ToFilterGroup()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheKeyPrefix, "list"), req.QueryParams, filter)
	if cacheErr := svc.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	listings, err := svc.repository.GetAll(ctx, req.QueryParams, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	total, err := svc.repository.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	res.FromModels(listings, total, req.Limit)

	if err = svc.hydrateHosts(ctx, listings, res.Listings); err != nil {
		return res, err
	}

	if cacheErr := svc.cache.Save(ctx, cacheKey, res, svc.config.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache listings")
	}

	return res, nil
}

func (svc *listingServiceImpl) Get(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheKeyPrefix, "id", id)
	if cacheErr := svc.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	listing, err := svc.getListing(ctx, id)
	if err != nil {
		return res, err
	}

	res, err = svc.buildResponse(ctx, listing)
	if err != nil {
		return res, err
	}

	if cacheErr := svc.cache.Save(ctx, cacheKey, res, svc.config.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache listing")
	}

	return res, nil
}

func (svc *listingServiceImpl) Update(ctx context.Context, id string, req dto.UpdateListingRequest, userID, role string) (res dto.ListingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	listing, err := svc.getListing(ctx, id)
	if err != nil {
		return res, err
	}

	if !listing.CanManage(userID, role) {
		return res, failure.Forbidden(msgUpdateOwnListing) //nolint:wrapcheck
	}

	fields := req.ToFieldMap()

	if err = svc.repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to update listing: %w", err)
	}

	svc.invalidateCaches(ctx, id)

	updated, err := svc.getListing(ctx, id)
	if err != nil {
		return res, err
	}

	return svc.buildResponse(ctx, updated)
}

func (svc *listingServiceImpl) Delete(ctx context.Context, id, userID, role string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	listing, err := svc.getListing(ctx, id)
	if err != nil {
		return err
	}

	if !listing.CanManage(userID, role) {
		return failure.Forbidden(msgDeleteOwnListing) //nolint:wrapcheck
	}

	if err = svc.repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	svc.invalidateCaches(ctx, id)

	return nil
}

func (svc *listingServiceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest, userID, role string) (res dto.ListingResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	listing, err := svc.getListing(ctx, id)
	if err != nil {
		return res, err
	}

	if !listing.CanManage(userID, role) {
		return res, failure.Forbidden(msgImageOwnListing) //nolint:wrapcheck
	}

	fileName := uuid.NewString() + filepath.Ext(req.FileHeader.Filename)

	url, err := svc.storage.UploadFile(ctx, imageDirectory, req.File, req.FileHeader, fileName)
	if err != nil {
		return res, fmt.Errorf("failed to upload listing image: %w", err)
	}

	listing.Images = append(listing.Images, url)

	fields := map[string]any{
		model.FieldImages:       listing.Images,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err = svc.repository.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to save listing image: %w", err)
	}

	svc.invalidateCaches(ctx, id)

	return svc.buildResponse(ctx, listing)
}

func (svc *listingServiceImpl) getListing(ctx context.Context, id string) (model.Listing, error) {
	listing, err := svc.repository.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if !listing.IsFound() {
		return listing, failure.NotFound(msgListingNotFound) //nolint:wrapcheck
	}

	return listing, nil
}

func (svc *listingServiceImpl) buildResponse(ctx context.Context, listing model.Listing) (res dto.ListingResponse, err error) {
	res.FromModel(listing)

	host, err := svc.userRepository.Get(ctx, shared.FilterByID(listing.HostID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get listing host: %w", err)
	}

	res.Host.FromModel(host)

	return res, nil
}

// hydrateHosts fills the nested host payloads with a single batched lookup.
func (svc *listingServiceImpl) hydrateHosts(ctx context.Context, listings []model.Listing, responses []dto.ListingResponse) error {
	if len(listings) == 0 {
		return nil
	}

	hostIDs := make([]string, 0, len(listings))
	seen := map[string]bool{}

	for _, listing := range listings {
		if !seen[listing.HostID] {
			seen[listing.HostID] = true
			hostIDs = append(hostIDs, listing.HostID)
		}
	}

	hosts, err := svc.userRepository.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldID,
				Value:    hostIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    userModel.TableName,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to get listing hosts: %w", err)
	}

	hostByID := make(map[string]userModel.User, len(hosts))
	for _, host := range hosts {
		hostByID[host.ID] = host
	}

	for i, listing := range listings {
		responses[i].Host.FromModel(hostByID[listing.HostID])
	}

	return nil
}

func (svc *listingServiceImpl) invalidateCaches(ctx context.Context, id string) {
	go func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithStack(fmt.Errorf("panic while invalidating listing caches: %v", r))
			}
		}()

		shared.InvalidateCaches(ctx, svc.cache, shared.BuildCacheKey(cacheKeyPrefix, "id", id))
		shared.InvalidateCaches(ctx, svc.cache, shared.BuildCacheKey(cacheKeyPrefix, "list"))
	}(context.WithoutCancel(ctx))
}

func (svc *listingServiceImpl) invalidateListCaches(ctx context.Context) {
	go func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithStack(fmt.Errorf("panic while invalidating listing caches: %v", r))
			}
		}()

		shared.InvalidateCaches(ctx, svc.cache, shared.BuildCacheKey(cacheKeyPrefix, "list"))
	}(context.WithoutCancel(ctx))
}
