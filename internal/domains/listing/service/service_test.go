package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/config"
	otelMocks "stayhub/infras/otel/mocks"
	s3Mocks "stayhub/infras/s3/mocks"
	"stayhub/internal/domains/listing/mocks"
	"stayhub/internal/domains/listing/model"
	"stayhub/internal/domains/listing/model/dto"
	userMocks "stayhub/internal/domains/user/mocks"
	userModel "stayhub/internal/domains/user/model"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/failure"
)

type serviceFixture struct {
	service  Listing
	repo     *mocks.MockListing
	userRepo *userMocks.MockUser
	cache    *cacheMocks.MockRedisCache
	storage  *s3Mocks.MockS3
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := mocks.NewMockListing(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	// Mutations invalidate caches from a detached goroutine.
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return serviceFixture{
		service:  New(repo, userRepo, redisCache, storage, cfg, otelMocks.NewOtel()),
		repo:     repo,
		userRepo: userRepo,
		cache:    redisCache,
		storage:  storage,
	}
}

func TestListingCreate(t *testing.T) {
	t.Run("creates listing owned by the caller", func(t *testing.T) {
		fixture := newServiceFixture(t)
		ctx := context.Background()

		req := dto.CreateListingRequest{
			Title:         "Cozy Cabin",
			Description:   "A quiet cabin in the woods",
			Address:       "1 Forest Road",
			City:          "Bend",
			State:         "Oregon",
			Country:       "USA",
			ZipCode:       "97701",
			PricePerNight: 120,
			PropertyType:  model.PropertyTypeHouse,
			Bedrooms:      2,
			Bathrooms:     1,
			MaxGuests:     4,
		}

		var inserted model.Listing

		fixture.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, listing model.Listing) error {
				inserted = listing
				return nil
			})

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "host-1", Username: "host"}, nil)

		res, err := fixture.service.Create(ctx, req, "host-1")

		require.NoError(t, err)
		assert.Equal(t, "host-1", inserted.HostID)
		assert.True(t, inserted.IsAvailable)
		assert.NotEmpty(t, inserted.ID)
		assert.Equal(t, "Cozy Cabin", res.Title)
		assert.Equal(t, "host-1", res.Host.ID)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := fixture.service.Create(context.Background(), dto.CreateListingRequest{}, "host-1")

		require.Error(t, err)
	})
}

func TestListingGet(t *testing.T) {
	t.Run("returns listing with nested host", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", Title: "Cozy Cabin", HostID: "host-1"}, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "host-1", Username: "host"}, nil)

		fixture.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).
			Return(nil)

		res, err := fixture.service.Get(context.Background(), "listing-1")

		require.NoError(t, err)
		assert.Equal(t, "listing-1", res.ID)
		assert.Equal(t, "host", res.Host.Username)
	})

	t.Run("unknown listing yields not found", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{}, nil)

		_, err := fixture.service.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Equal(t, "Listing not found.", err.Error())
	})
}

func TestListingUpdate(t *testing.T) {
	title := "Updated Cabin"

	t.Run("host updates own listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, title, fields[model.FieldTitle])
				return nil
			})

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", Title: title, HostID: "host-1"}, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "host-1"}, nil)

		res, err := fixture.service.Update(context.Background(), "listing-1", dto.UpdateListingRequest{Title: &title}, "host-1", "user")

		require.NoError(t, err)
		assert.Equal(t, title, res.Title)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil)

		_, err := fixture.service.Update(context.Background(), "listing-1", dto.UpdateListingRequest{Title: &title}, "user-2", "user")

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Equal(t, "You can only update your own listings.", err.Error())
	})

	t.Run("admin may update any listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil).
			Times(2)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "host-1"}, nil)

		_, err := fixture.service.Update(context.Background(), "listing-1", dto.UpdateListingRequest{Title: &title}, "admin-1", "admin")

		require.NoError(t, err)
	})
}

func TestListingDelete(t *testing.T) {
	t.Run("host deletes own listing", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil)

		fixture.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.service.Delete(context.Background(), "listing-1", "host-1", "user")

		require.NoError(t, err)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil)

		err := fixture.service.Delete(context.Background(), "listing-1", "user-2", "user")

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Equal(t, "You can only delete your own listings.", err.Error())
	})
}

func TestListingGetAll(t *testing.T) {
	t.Run("returns paginated listings with hosts", func(t *testing.T) {
		fixture := newServiceFixture(t)

		req := dto.GetListingsRequest{}
		req.Page = 1
		req.Limit = 10

		fixture.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), req.QueryParams, gomock.Any()).
			Return([]model.Listing{
				{ID: "listing-1", HostID: "host-1"},
				{ID: "listing-2", HostID: "host-1"},
			}, nil)

		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(12, nil)

		fixture.userRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{{ID: "host-1", Username: "host"}}, nil)

		fixture.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).
			Return(nil)

		res, err := fixture.service.GetAll(context.Background(), req)

		require.NoError(t, err)
		assert.Len(t, res.Listings, 2)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Equal(t, "host", res.Listings[0].Host.Username)
	})

	t.Run("serves cached payload without hitting storage", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.GetListingsResponse)
				require.True(t, ok)
				res.TotalData = 3
				return nil
			})

		res, err := fixture.service.GetAll(context.Background(), dto.GetListingsRequest{})

		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
	})
}

func TestListingUploadImage(t *testing.T) {
	t.Run("other user cannot attach images", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Listing{ID: "listing-1", HostID: "host-1"}, nil)

		_, err := fixture.service.UploadImage(context.Background(), "listing-1", dto.UploadImageRequest{}, "user-2", "user")

		require.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}
