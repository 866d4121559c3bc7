package table_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "bistro/infras/otel/mocks"
	"bistro/internal/domains/table/mocks"
	"bistro/internal/domains/table/model/dto"
	"bistro/internal/handlers/table"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	tableID  = "2e3f4a5b-6c7d-4e8f-9a0b-1c2d3e4f5a6b"
	waiterID = "8b7a6c5d-4e3f-4210-9876-543210fedcba"
)

var admin = session.Session{UserID: "a-1", Login: "admin", Name: "Administrator", Role: constant.RoleAdmin}

func newRouter(svc *mocks.MockTableService) *chi.Mux {
	handler := table.New(svc, otelMocks.NewOtel())

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

func TestCreateTable(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *mocks.MockTableService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "table created",
			body: `{"number":3,"capacity":4}`,
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().
					Create(gomock.Any(), admin, dto.CreateTableRequest{Number: 3, Capacity: 4}).
					Return(dto.TableResponse{ID: tableID, Number: 3, Capacity: 4}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: tableID,
		},
		{
			name: "number taken",
			body: `{"number":3,"capacity":4}`,
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().Create(gomock.Any(), admin, gomock.Any()).Return(dto.TableResponse{}, failure.Conflict("table number already exists"))
			},
			wantCode: http.StatusConflict,
			wantBody: string(failure.KindConflict),
		},
		{
			name:      "capacity missing",
			body:      `{"number":3}`,
			setupMock: func(*mocks.MockTableService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "capacity is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockTableService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodPost, "/tables", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetAvailable(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(svc *mocks.MockTableService)
		wantCode  int
	}{
		{
			name:  "interval passed through",
			query: "date=2025-06-01&start_time=18:00&end_time=20:00&guests=4",
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().
					Available(gomock.Any(), dto.AvailableTablesRequest{Date: "2025-06-01", StartTime: "18:00", EndTime: "20:00", Guests: 4}).
					Return(dto.AvailableTablesResponse{Tables: []dto.TableResponse{{ID: tableID, Number: 3, Capacity: 4}}}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "inverted interval",
			query: "date=2025-06-01&start_time=20:00&end_time=18:00&guests=4",
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().Available(gomock.Any(), gomock.Any()).Return(dto.AvailableTablesResponse{}, failure.BadRequestFromString("end must be after start"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "malformed clock",
			query:     "date=2025-06-01&start_time=6pm&end_time=20:00&guests=4",
			setupMock: func(*mocks.MockTableService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "guests missing",
			query:     "date=2025-06-01&start_time=18:00&end_time=20:00",
			setupMock: func(*mocks.MockTableService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockTableService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodGet, "/tables/available?"+tt.query, "")

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAssignWaiter(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		body      string
		setupMock func(svc *mocks.MockTableService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "waiter assigned",
			id:   tableID,
			body: `{"waiter_id":"` + waiterID + `"}`,
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().
					AssignWaiter(gomock.Any(), admin, tableID, dto.AssignWaiterRequest{WaiterID: waiterID}).
					Return(dto.TableResponse{ID: tableID, WaiterID: waiterID, WaiterName: "Anna K"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "Anna K",
		},
		{
			name: "user is not a waiter",
			id:   tableID,
			body: `{"waiter_id":"` + waiterID + `"}`,
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().AssignWaiter(gomock.Any(), admin, tableID, gomock.Any()).Return(dto.TableResponse{}, failure.BadRequestFromString("user is not a waiter"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: string(failure.KindInvalidInput),
		},
		{
			name: "unknown table",
			id:   tableID,
			body: `{"waiter_id":"` + waiterID + `"}`,
			setupMock: func(svc *mocks.MockTableService) {
				svc.EXPECT().AssignWaiter(gomock.Any(), admin, tableID, gomock.Any()).Return(dto.TableResponse{}, failure.NotFound("table not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: string(failure.KindNotFound),
		},
		{
			name:      "malformed table id",
			id:        "3",
			body:      `{"waiter_id":"` + waiterID + `"}`,
			setupMock: func(*mocks.MockTableService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  string(failure.KindInvalidInput),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockTableService(ctrl)
			tt.setupMock(svc)

			rec := do(newRouter(svc), http.MethodPut, "/tables/"+tt.id+"/waiter", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
