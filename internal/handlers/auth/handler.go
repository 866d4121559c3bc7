package auth

import (
	"bistro/infras/otel"
	"bistro/internal/domains/auth/model/dto"
	"bistro/internal/domains/auth/service"
	"bistro/shared/constant"
	"bistro/shared/session"
	"bistro/shared/validator"
	"bistro/transport/http/response"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Get("/me", handler.Me)
		r.Put("/password", handler.ChangePassword)
	})
}

// call traces op, runs fn and writes its result with status, or the error it returned.
func (handler *Handler) call(w http.ResponseWriter, r *http.Request, op string, status int, fn func(ctx context.Context) (any, error)) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	res, err := fn(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("operation", op).Msg("auth request rejected")

		response.WithError(w, err)

		return
	}

	if message, ok := res.(string); ok {
		response.WithMessage(w, status, message)

		return
	}

	response.WithJSON(w, status, res)
}

// body decodes and validates the request body into a fresh T.
func body[T any](r *http.Request) (T, error) {
	var req T

	return req, validator.Validate(r.Body, &req)
}

// Register handles client self-registration
// @Summary Register a new client
// @Description Create a client account. Staff accounts are created by an administrator.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} userDto.UserResponse "Client registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	handler.call(w, r, "Register", http.StatusCreated, func(ctx context.Context) (any, error) {
		req, err := body[dto.RegisterRequest](r)
		if err != nil {
			return nil, err
		}

		return handler.service.Register(ctx, req)
	})
}

// Login handles user login
// @Summary Login a user
// @Description Authenticate with login and password and receive a token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	handler.call(w, r, "Login", http.StatusOK, func(ctx context.Context) (any, error) {
		req, err := body[dto.LoginRequest](r)
		if err != nil {
			return nil, err
		}

		return handler.service.Login(ctx, req)
	})
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Refresh user token using the provided refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.RefreshTokenResponse "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	handler.call(w, r, "RefreshToken", http.StatusOK, func(ctx context.Context) (any, error) {
		req, err := body[dto.RefreshTokenRequest](r)
		if err != nil {
			return nil, err
		}

		return handler.service.RefreshToken(ctx, req)
	})
}

// Me returns the caller's profile
// @Summary Current user
// @Description Profile of the authenticated user. Waiters also get their open shift, if any.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	handler.call(w, r, "Me", http.StatusOK, func(ctx context.Context) (any, error) {
		sess, err := session.Require(ctx)
		if err != nil {
			return nil, err
		}

		return handler.service.Me(ctx, sess)
	})
}

// ChangePassword replaces the caller's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	handler.call(w, r, "ChangePassword", http.StatusOK, func(ctx context.Context) (any, error) {
		sess, err := session.Require(ctx)
		if err != nil {
			return nil, err
		}

		req, err := body[dto.ChangePasswordRequest](r)
		if err != nil {
			return nil, err
		}

		if err := handler.service.ChangePassword(ctx, sess, req); err != nil {
			return nil, err
		}

		return "Password changed successfully", nil
	})
}
