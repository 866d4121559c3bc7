package statistics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "bistro/infras/otel/mocks"
	"bistro/internal/domains/statistics/mocks"
	"bistro/internal/domains/statistics/model/dto"
	"bistro/internal/handlers/statistics"
	"bistro/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(svc *mocks.MockStatisticsService) *chi.Mux {
	handler := statistics.New(svc, otelMocks.NewOtel())

	mux := chi.NewRouter()
	handler.Router(mux)

	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestGetSales(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		setupMock func(svc *mocks.MockStatisticsService)
		wantCode  int
		wantBody  string
	}{
		{
			name:   "report for month",
			target: "/statistics/sales?month=3&year=2025",
			setupMock: func(svc *mocks.MockStatisticsService) {
				svc.EXPECT().
					Sales(gomock.Any(), dto.MonthRequest{Month: 3, Year: 2025}).
					Return(dto.SalesResponse{Month: 3, Year: 2025, Revenue: 12500}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"revenue":12500`,
		},
		{
			name:      "month missing",
			target:    "/statistics/sales?year=2025",
			setupMock: func(*mocks.MockStatisticsService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "month is required",
		},
		{
			name:   "month out of range",
			target: "/statistics/sales?month=13&year=2025",
			setupMock: func(svc *mocks.MockStatisticsService) {
				svc.EXPECT().
					Sales(gomock.Any(), dto.MonthRequest{Month: 13, Year: 2025}).
					Return(dto.SalesResponse{}, failure.BadRequestFromString("month must be between 1 and 12"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: string(failure.KindInvalidInput),
		},
		{
			name:   "storage down",
			target: "/statistics/sales?month=3&year=2025",
			setupMock: func(svc *mocks.MockStatisticsService) {
				svc.EXPECT().
					Sales(gomock.Any(), gomock.Any()).
					Return(dto.SalesResponse{}, failure.StorageUnavailable(errors.New("connection refused")))
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: string(failure.KindStorageUnavailable),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockStatisticsService(ctrl)
			tt.setupMock(svc)

			rec := get(newRouter(svc), tt.target)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetWaiters(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockStatisticsService(ctrl)

	svc.EXPECT().
		Waiters(gomock.Any(), dto.MonthRequest{Month: 11, Year: 2024}).
		Return(dto.WaitersResponse{}, nil)

	rec := get(newRouter(svc), "/statistics/waiters?month=11&year=2024")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSessions(t *testing.T) {
	t.Run("period passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockStatisticsService(ctrl)

		svc.EXPECT().
			Sessions(gomock.Any(), dto.PeriodRequest{From: "2025-03-01", To: "2025-03-31"}).
			Return(dto.SessionsResponse{}, nil)

		rec := get(newRouter(svc), "/statistics/sessions?from=2025-03-01&to=2025-03-31")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockStatisticsService(ctrl)

		rec := get(newRouter(svc), "/statistics/sessions?from=01.03.2025&to=2025-03-31")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
