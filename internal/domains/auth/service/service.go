package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Auth=MockAuthService

import (
	"context"
	"fmt"

	"stayhub/infras/jwt"
	"stayhub/infras/otel"
	"stayhub/internal/domains/auth/model/dto"
	userModel "stayhub/internal/domains/user/model"
	userRepository "stayhub/internal/domains/user/repository"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/failure"
	"stayhub/shared/password"
	"stayhub/shared/timezone"
)

const (
	msgUsernameTaken      = "A user with that username already exists."
	msgEmailTaken         = "A user with that email already exists."
	msgInvalidCredentials = "Invalid username or password."
	msgInvalidRefresh     = "Invalid or expired refresh token."
	msgUserNotFound       = "User not found."
	msgWrongOldPassword   = "Old password is incorrect."
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (*jwt.TokenPair, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type authServiceImpl struct {
	userRepository userRepository.User
	jwt            jwt.JWT
	otel           otel.Otel
}

func New(userRepo userRepository.User, jwtService jwt.JWT, otl otel.Otel) Auth {
	return &authServiceImpl{
		userRepository: userRepo,
		jwt:            jwtService,
		otel:           otl,
	}
}

func (svc *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	usernameTaken, err := svc.userRepository.Exist(ctx, filterByField(userModel.FieldUsername, req.Username))
	if err != nil {
		return res, fmt.Errorf("failed to check username: %w", err)
	}

	if usernameTaken {
		return res, failure.Conflict(msgUsernameTaken) //nolint:wrapcheck
	}

	emailTaken, err := svc.userRepository.Exist(ctx, filterByField(userModel.FieldEmail, req.Email))
	if err != nil {
		return res, fmt.Errorf("failed to check email: %w", err)
	}

	if emailTaken {
		return res, failure.Conflict(msgEmailTaken) //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashed)

	if err = svc.userRepository.Insert(ctx, user); err != nil {
		return res, fmt.Errorf("failed to register user: %w", err)
	}

	tokens, err := svc.jwt.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromModel(user, tokens)

	return res, nil
}

func (svc *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := svc.userRepository.Get(ctx, filterByField(userModel.FieldUsername, req.Username))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" || !user.Active {
		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	tokens, err := svc.jwt.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromModel(user, tokens)

	return res, nil
}

func (svc *authServiceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (tokens *jwt.TokenPair, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokens, err = svc.jwt.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return nil, failure.Unauthorized(msgInvalidRefresh) //nolint:wrapcheck
	}

	return tokens, nil
}

func (svc *authServiceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := svc.userRepository.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound(msgUserNotFound) //nolint:wrapcheck
	}

	if err = password.Verify(req.OldPassword, user.Password); err != nil {
		return failure.BadRequestFromString(msgWrongOldPassword) //nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fields := map[string]any{
		userModel.FieldPassword: hashed,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err = svc.userRepository.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func filterByField(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    userModel.TableName,
			},
		},
	}
}
