package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro/config"
	"bistro/infras/jwt"
	jwtMocks "bistro/infras/jwt/mocks"
	otelMocks "bistro/infras/otel/mocks"
	"bistro/permissions"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"
	"bistro/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAPIKey = "internal-key"

type errorBody struct {
	Error string       `json:"error"`
	Kind  failure.Kind `json:"kind"`
}

// newGuardedRouter mounts a few routes behind the same chain the server uses.
func newGuardedRouter(t *testing.T, jwtService jwt.JWT) (*chi.Mux, *session.Session) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	data := permissions.Get()
	require.NotNil(t, data)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), data, cfg)

	seen := &session.Session{}
	capture := func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(authRole.APIKey)
		r.Use(authRole.Auth)
		r.Use(authRole.RBAC)

		r.Route("/v1", func(v1 chi.Router) {
			v1.Post("/auth/login", capture)
			v1.Route("/users", func(users chi.Router) {
				users.Get("/", capture)
			})
			v1.Get("/statistics/sales", capture)
			v1.Get("/unlisted", capture)
		})
	})

	return mux, seen
}

func serve(mux http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuth_SkippedRouteNeedsNoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, seen := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodPost, "/v1/auth/login", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, seen.UserID)
}

func TestAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, _ := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodGet, "/v1/users", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, failure.KindUnauthorized, decodeError(t, rec).Kind)
}

func TestAuth_MalformedHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, _ := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodGet, "/v1/users", map[string]string{
		constant.RequestHeaderAuthorization: "Token abc",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid authorization header format", decodeError(t, rec).Error)
}

func TestAuth_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	mux, _ := newGuardedRouter(t, jwtService)

	jwtService.EXPECT().
		ValidateToken(gomock.Any(), "stale", jwt.AccessToken).
		Return(nil, jwt.ErrExpiredToken)

	rec := serve(mux, http.MethodGet, "/v1/users", map[string]string{
		constant.RequestHeaderAuthorization: "Bearer stale",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has expired", decodeError(t, rec).Error)
}

func TestAuth_ClaimsWithoutRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	mux, _ := newGuardedRouter(t, jwtService)

	jwtService.EXPECT().
		ValidateToken(gomock.Any(), "partial", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u-1"}, nil)

	rec := serve(mux, http.MethodGet, "/v1/users", map[string]string{
		constant.RequestHeaderAuthorization: "Bearer partial",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBAC_ByRole(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		target string
		want   int
	}{
		{name: "admin lists users", role: constant.RoleAdmin, target: "/v1/users", want: http.StatusOK},
		{name: "client lists users", role: constant.RoleClient, target: "/v1/users", want: http.StatusForbidden},
		{name: "waiter reads sales", role: constant.RoleWaiter, target: "/v1/statistics/sales", want: http.StatusForbidden},
		{name: "admin reads sales", role: constant.RoleAdmin, target: "/v1/statistics/sales", want: http.StatusOK},
		{name: "route missing from table", role: constant.RoleAdmin, target: "/v1/unlisted", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			mux, seen := newGuardedRouter(t, jwtService)

			jwtService.EXPECT().
				ValidateToken(gomock.Any(), "good", jwt.AccessToken).
				Return(&jwt.Claims{UserID: "u-1", Login: "ann", Name: "Ann", Role: tt.role}, nil)

			rec := serve(mux, http.MethodGet, tt.target, map[string]string{
				constant.RequestHeaderAuthorization: "Bearer good",
			})

			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK {
				assert.Equal(t, session.Session{UserID: "u-1", Login: "ann", Name: "Ann", Role: tt.role}, *seen)
			} else {
				assert.Equal(t, failure.KindForbidden, decodeError(t, rec).Kind)
			}
		})
	}
}

func TestAPIKey_RunsAsSystemAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, seen := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodGet, "/v1/statistics/sales", map[string]string{
		constant.RequestHeaderAPIKey: testAPIKey,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.SystemUser, seen.UserID)
	assert.True(t, seen.IsAdmin())
}

func TestAPIKey_Wrong(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, _ := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodGet, "/v1/users", map[string]string{
		constant.RequestHeaderAPIKey: "guess",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_UnknownRouteFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux, _ := newGuardedRouter(t, jwtMocks.NewMockJWT(ctrl))

	rec := serve(mux, http.MethodGet, "/v1/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
