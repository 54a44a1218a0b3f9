package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stayhub/infras/jwt"
	jwtMocks "stayhub/infras/jwt/mocks"
	otelMocks "stayhub/infras/otel/mocks"
	"stayhub/internal/domains/auth/model/dto"
	userMocks "stayhub/internal/domains/user/mocks"
	userModel "stayhub/internal/domains/user/model"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/password"
)

type serviceFixture struct {
	service  Auth
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	userRepo := userMocks.NewMockUser(ctrl)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	return serviceFixture{
		service:  New(userRepo, jwtService, otelMocks.NewOtel()),
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}
}

func TestAuthRegister(t *testing.T) {
	req := dto.RegisterRequest{
		Username:  "newuser",
		Email:     "new@example.com",
		Password:  "supersecret",
		FirstName: "New",
		LastName:  "User",
	}

	t.Run("registers user with hashed password and default role", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(2)

		var inserted userModel.User

		fixture.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				inserted = user
				return nil
			})

		fixture.jwt.EXPECT().
			GenerateTokenPair(gomock.Any(), "newuser", constant.RoleUser).
			Return(tokenPair(), nil)

		res, err := fixture.service.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, constant.RoleUser, inserted.Role)
		assert.True(t, inserted.Active)
		assert.NotEqual(t, "supersecret", inserted.Password)
		require.NoError(t, password.Verify("supersecret", inserted.Password))
		assert.Equal(t, "newuser", res.User.Username)
		assert.Equal(t, "access", res.Tokens.AccessToken)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := fixture.service.Register(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "A user with that username already exists.", err.Error())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		fixture := newServiceFixture(t)

		gomock.InOrder(
			fixture.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
			fixture.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		_, err := fixture.service.Register(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "A user with that email already exists.", err.Error())
	})
}

func TestAuthLogin(t *testing.T) {
	hashed, err := password.Hash("supersecret")
	require.NoError(t, err)

	activeUser := userModel.User{
		ID:       "user-1",
		Username: "someone",
		Password: hashed,
		Role:     constant.RoleUser,
		Active:   true,
	}

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser, nil)

		fixture.jwt.EXPECT().
			GenerateTokenPair("user-1", "someone", constant.RoleUser).
			Return(tokenPair(), nil)

		res, err := fixture.service.Login(context.Background(), dto.LoginRequest{Username: "someone", Password: "supersecret"})

		require.NoError(t, err)
		assert.Equal(t, "user-1", res.User.ID)
		assert.Equal(t, "refresh", res.Tokens.RefreshToken)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser, nil)

		_, err := fixture.service.Login(context.Background(), dto.LoginRequest{Username: "someone", Password: "wrong"})

		require.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
		assert.Equal(t, "Invalid username or password.", err.Error())
	})

	t.Run("rejects unknown username", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := fixture.service.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "supersecret"})

		require.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		fixture := newServiceFixture(t)

		inactive := activeUser
		inactive.Active = false

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := fixture.service.Login(context.Background(), dto.LoginRequest{Username: "someone", Password: "supersecret"})

		require.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthRefreshToken(t *testing.T) {
	t.Run("issues fresh pair for valid refresh token", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "refresh").
			Return(tokenPair(), nil)

		tokens, err := fixture.service.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access", tokens.AccessToken)
	})

	t.Run("rejects invalid refresh token", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "bad").
			Return(nil, jwt.ErrInvalidToken)

		_, err := fixture.service.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})

		require.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthChangePassword(t *testing.T) {
	hashed, err := password.Hash("oldsecret")
	require.NoError(t, err)

	user := userModel.User{ID: "user-1", Username: "someone", Password: hashed, Active: true}

	t.Run("replaces password when old one matches", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		fixture.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				newHash, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("newsecret123", newHash))
				return nil
			})

		err := fixture.service.ChangePassword(context.Background(), dto.ChangePasswordRequest{OldPassword: "oldsecret", NewPassword: "newsecret123"}, "user-1")

		require.NoError(t, err)
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		fixture := newServiceFixture(t)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		err := fixture.service.ChangePassword(context.Background(), dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret123"}, "user-1")

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "Old password is incorrect.", err.Error())
	})
}
