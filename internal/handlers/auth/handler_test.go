package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "bistro/infras/otel/mocks"
	"bistro/internal/domains/auth/mocks"
	"bistro/internal/domains/auth/model/dto"
	userDto "bistro/internal/domains/user/model/dto"
	"bistro/internal/handlers/auth"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(svc *mocks.MockAuth, sess *session.Session) *chi.Mux {
	handler := auth.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess != nil {
				r = r.WithContext(session.WithContext(r.Context(), *sess))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(mux)

	return mux
}

func post(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)
	mux := newRouter(svc, nil)

	req := dto.RegisterRequest{Login: "ann", Password: "secret123", ConfirmPassword: "secret123", FullName: "Ann Lee"}

	svc.EXPECT().
		Register(gomock.Any(), req).
		Return(userDto.UserResponse{ID: "u-1", Login: "ann", Role: constant.RoleClient, Active: true}, nil)

	rec := post(mux, http.MethodPost, "/auth/register",
		`{"login":"ann","password":"secret123","confirm_password":"secret123","full_name":"Ann Lee"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"client"`)
}

func TestRegister_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)
	mux := newRouter(svc, nil)

	rec := post(mux, http.MethodPost, "/auth/register",
		`{"login":"ann","password":"short","confirm_password":"short","full_name":"Ann Lee"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)
	mux := newRouter(svc, nil)

	svc.EXPECT().
		Login(gomock.Any(), dto.LoginRequest{Login: "ann", Password: "nope"}).
		Return(dto.LoginResponse{}, failure.Unauthorized("invalid login or password"))

	rec := post(mux, http.MethodPost, "/auth/login", `{"login":"ann","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(failure.KindUnauthorized))
}

func TestMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)
	sess := session.Session{UserID: "u-1", Login: "ann", Name: "Ann Lee", Role: constant.RoleClient}
	mux := newRouter(svc, &sess)

	svc.EXPECT().
		Me(gomock.Any(), sess).
		Return(dto.MeResponse{User: userDto.UserResponse{ID: "u-1", Login: "ann"}}, nil)

	rec := post(mux, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"ann"`)
}

func TestChangePassword_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)
	mux := newRouter(svc, nil)

	rec := post(mux, http.MethodPut, "/auth/password", `{"current_password":"a","new_password":"longenough"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
