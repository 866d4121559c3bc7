package shift_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "bistro/infras/otel/mocks"
	"bistro/internal/domains/shift/mocks"
	"bistro/internal/domains/shift/model/dto"
	"bistro/internal/handlers/shift"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	shiftID  = "6a5b4c3d-2e1f-4a0b-9c8d-7e6f5a4b3c2d"
	waiterID = "8b7a6c5d-4e3f-4210-9876-543210fedcba"
)

var waiter = session.Session{UserID: waiterID, Login: "anna", Name: "Anna K", Role: constant.RoleWaiter}

func newRouter(svc *mocks.MockShiftService) *chi.Mux {
	handler := shift.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), waiter)))
		})
	})
	handler.Router(mux)

	return mux
}

func do(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func TestStartShift(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(svc *mocks.MockShiftService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "shift opened",
			setupMock: func(svc *mocks.MockShiftService) {
				svc.EXPECT().Start(gomock.Any(), waiter).Return(dto.ShiftResponse{ID: shiftID, WaiterID: waiterID, Open: true}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: shiftID,
		},
		{
			name: "already on shift",
			setupMock: func(svc *mocks.MockShiftService) {
				svc.EXPECT().Start(gomock.Any(), waiter).Return(dto.ShiftResponse{}, failure.InvalidState("shift already open"))
			},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: string(failure.KindInvalidState),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockShiftService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodPost, "/shifts/start")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCloseShift(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(svc *mocks.MockShiftService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "tips settled",
			id:   shiftID,
			setupMock: func(svc *mocks.MockShiftService) {
				svc.EXPECT().Close(gomock.Any(), waiter, shiftID).Return(dto.CloseShiftResponse{ShiftID: shiftID, PaidSum: 12000, Tips: 1200}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"tips":1200`,
		},
		{
			name: "already closed",
			id:   shiftID,
			setupMock: func(svc *mocks.MockShiftService) {
				svc.EXPECT().Close(gomock.Any(), waiter, shiftID).Return(dto.CloseShiftResponse{}, failure.InvalidState("shift is already closed"))
			},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: string(failure.KindInvalidState),
		},
		{
			name: "someone else's shift",
			id:   shiftID,
			setupMock: func(svc *mocks.MockShiftService) {
				svc.EXPECT().Close(gomock.Any(), waiter, shiftID).Return(dto.CloseShiftResponse{}, failure.NotFound("shift not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: string(failure.KindNotFound),
		},
		{
			name:      "malformed id",
			id:        "today",
			setupMock: func(*mocks.MockShiftService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  string(failure.KindInvalidInput),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockShiftService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodPost, "/shifts/"+tt.id+"/close")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetShifts(t *testing.T) {
	t.Run("month passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockShiftService(ctrl)

		svc.EXPECT().
			List(gomock.Any(), dto.ListShiftsRequest{WaiterID: waiterID, Month: 4, Year: 2025}, gomock.Any()).
			Return(dto.GetShiftsResponse{}, nil)

		rec := do(newRouter(svc), http.MethodGet, "/shifts?waiter_id="+waiterID+"&month=4&year=2025")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("month out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockShiftService(ctrl)

		rec := do(newRouter(svc), http.MethodGet, "/shifts?month=13&year=2025")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
