package user_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "bistro/infras/otel/mocks"
	"bistro/internal/domains/user/mocks"
	"bistro/internal/domains/user/model/dto"
	"bistro/internal/handlers/user"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const userID = "1b2c3d4e-5f60-4718-9a0b-1c2d3e4f5a6b"

var admin = session.Session{UserID: "a-1", Login: "admin", Name: "Administrator", Role: constant.RoleAdmin}

func newRouter(svc *mocks.MockUserService) *chi.Mux {
	handler := user.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), admin)))
		})
	})
	handler.Router(mux)

	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestCreateUser(t *testing.T) {
	body := `{"login":"anna","password":"s3cretpass","full_name":"Anna K","role":"waiter"}`
	want := dto.CreateUserRequest{Login: "anna", Password: "s3cretpass", FullName: "Anna K", Role: constant.RoleWaiter}

	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockUserService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "waiter account created",
			body: body,
			setupMock: func(svc *mocks.MockUserService) {
				svc.EXPECT().Create(gomock.Any(), admin, want).Return(dto.UserResponse{ID: userID, Login: "anna", Role: "waiter"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: userID,
		},
		{
			name: "login taken",
			body: body,
			setupMock: func(svc *mocks.MockUserService) {
				svc.EXPECT().Create(gomock.Any(), admin, want).Return(dto.UserResponse{}, failure.Conflict("login already exists"))
			},
			wantCode: http.StatusConflict,
			wantBody: string(failure.KindConflict),
		},
		{
			name:      "unknown role",
			body:      `{"login":"anna","password":"s3cretpass","full_name":"Anna K","role":"chef"}`,
			setupMock: func(*mocks.MockUserService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "role",
		},
		{
			name:      "empty body",
			body:      "",
			setupMock: func(*mocks.MockUserService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "request body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockUserService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetUsers_RoleFilter(t *testing.T) {
	t.Run("known role passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockUserService(ctrl)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), constant.RoleWaiter).Return(dto.GetUsersResponse{TotalPage: 1}, nil)

		rec := do(newRouter(svc), http.MethodGet, "/users?role=waiter", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockUserService(ctrl)

		rec := do(newRouter(svc), http.MethodGet, "/users?role=chef", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(svc *mocks.MockUserService)
		wantCode  int
	}{
		{
			name: "found",
			id:   userID,
			setupMock: func(svc *mocks.MockUserService) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(dto.UserResponse{ID: userID}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "missing",
			id:   userID,
			setupMock: func(svc *mocks.MockUserService) {
				svc.EXPECT().Get(gomock.Any(), userID).Return(dto.UserResponse{}, failure.NotFound("user not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed id",
			id:        "anna",
			setupMock: func(*mocks.MockUserService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockUserService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodGet, "/users/"+tt.id, "")

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
