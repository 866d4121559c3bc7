package dto

import (
	"bistro/infras/jwt"
	shiftDto "bistro/internal/domains/shift/model/dto"
	userModel "bistro/internal/domains/user/model"
	userDto "bistro/internal/domains/user/model/dto"
	"bistro/shared/constant"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Login           string `json:"login"            validate:"required,alphanum,min=3,max=50"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FullName        string `json:"full_name"        validate:"required,max=100"`
}

// ToUserModel builds a client account. Self-registration never grants staff roles.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Login:    r.Login,
		Password: hashedPassword,
		FullName: r.FullName,
		RoleID:   constant.RoleIDClient,
		Role:     constant.RoleClient,
		Active:   true,
		Metadata: gModel.NewMetadata(timezone.Now(), constant.ContextGuest),
	}
}

type LoginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8,max=72"`
}

// MeResponse is the signed-in profile. Shift is set only for a waiter on an open shift.
type MeResponse struct {
	User  userDto.UserResponse    `json:"user"`
	Shift *shiftDto.ShiftResponse `json:"shift,omitempty"`
}
