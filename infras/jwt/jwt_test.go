package jwt_test

import (
	"context"
	"testing"

	"bistro/config"
	"bistro/infras/jwt"
	"bistro/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "bistro"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestService_RoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	identity := jwt.Identity{UserID: "u-1", Login: "anna", Name: "Anna K", Role: constant.RoleWaiter}

	pair, err := svc.GenerateTokenPair(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_RefreshTokens(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, jwt.Identity{UserID: "u-2", Login: "boris", Role: constant.RoleClient})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-2", claims.UserID)
	assert.Equal(t, constant.RoleClient, claims.Role)

	_, err = svc.RefreshTokens(ctx, "garbage")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Token abc")
	assert.Error(t, err)
}

func TestService_ValidateToken_Failures(t *testing.T) {
	ctx := context.Background()
	identity := jwt.Identity{UserID: "u-3", Login: "clara", Role: constant.RoleAdmin}

	t.Run("expired", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "bistro"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.RefreshSecret = "refresh-secret"
		cfg.JWT.AccessExpireMin = -5

		svc := jwt.New(cfg)
		pair, err := svc.GenerateTokenPair(ctx, identity)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		pair, err := newService().GenerateTokenPair(ctx, identity)
		require.NoError(t, err)

		cfg := &config.Config{}
		cfg.App.Name = "other"
		cfg.JWT.AccessSecret = "access-secret"
		cfg.JWT.AccessExpireMin = 15

		_, err = jwt.New(cfg).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("kind mismatch with shared secret", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "bistro"
		cfg.JWT.AccessSecret = "same"
		cfg.JWT.RefreshSecret = "same"
		cfg.JWT.AccessExpireMin = 15
		cfg.JWT.RefreshExpireMin = 60

		svc := jwt.New(cfg)
		pair, err := svc.GenerateTokenPair(ctx, identity)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := newService().ValidateToken(ctx, "x", jwt.TokenType("id"))
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader_EmptyToken(t *testing.T) {
	_, err := jwt.ExtractTokenFromHeader("Bearer  ")
	assert.Error(t, err)
}
