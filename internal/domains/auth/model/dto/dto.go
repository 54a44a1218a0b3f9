package dto

import (
	"github.com/google/uuid"

	"stayhub/infras/jwt"
	userModel "stayhub/internal/domains/user/model"
	userDto "stayhub/internal/domains/user/model/dto"
	"stayhub/shared/constant"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type RegisterRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=150"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name"  validate:"omitempty,max=150"`
}

// ToModel builds the user record. The password is stored hashed, never as
// submitted.
func (r *RegisterRequest) ToModel(hashedPassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:        uuid.NewString(),
		Username:  r.Username,
		Email:     r.Email,
		Password:  hashedPassword,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      constant.RoleUser,
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse carries the authenticated user together with a fresh token
// pair.
type AuthResponse struct {
	User   userDto.UserResponse `json:"user"`
	Tokens *jwt.TokenPair       `json:"tokens"`
}

func (r *AuthResponse) FromModel(user userModel.User, tokens *jwt.TokenPair) {
	r.User.FromModel(user)
	r.Tokens = tokens
}
