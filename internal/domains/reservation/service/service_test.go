package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	availabilityMocks "bistro/internal/domains/availability/mocks"
	reservationMocks "bistro/internal/domains/reservation/mocks"
	"bistro/internal/domains/reservation/model"
	"bistro/internal/domains/reservation/model/dto"
	"bistro/internal/domains/reservation/service"
	tableMocks "bistro/internal/domains/table/mocks"
	tableModel "bistro/internal/domains/table/model"
	userMocks "bistro/internal/domains/user/mocks"
	userModel "bistro/internal/domains/user/model"
	cacheMocks "bistro/shared/cache/mocks"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	eventMocks "bistro/shared/event/mocks"
	"bistro/shared/failure"
	"bistro/shared/session"
)

var (
	client = session.Session{UserID: "c-1", Login: "boris", Name: "Boris P", Role: constant.RoleClient}
	waiter = session.Session{UserID: "w-1", Login: "anna", Name: "Anna K", Role: constant.RoleWaiter}
)

type fixture struct {
	repo      *reservationMocks.MockReservation
	tables    *tableMocks.MockTable
	users     *userMocks.MockUser
	checker   *availabilityMocks.MockChecker
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	svc       service.Reservation
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      reservationMocks.NewMockReservation(ctrl),
		tables:    tableMocks.NewMockTable(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		checker:   availabilityMocks.NewMockChecker(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.tables, f.users, f.checker, f.publisher, &config.Config{}, f.cache, mocks.NewOtel())

	return f
}

func validRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		TableID:   "00000000-0000-0000-0000-0000000000a1",
		Date:      "2024-05-10",
		StartTime: "18:00",
		EndTime:   "20:00",
		Guests:    2,
	}
}

var table = tableModel.Table{ID: "00000000-0000-0000-0000-0000000000a1", Number: 3, Capacity: 4}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name      string
		sess      session.Session
		mutate    func(req *dto.CreateReservationRequest)
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "client books for themselves",
			sess: client,
			mutate: func(req *dto.CreateReservationRequest) {
				req.ClientID = "00000000-0000-0000-0000-0000000000c9"
			},
			setupMock: func(f fixture) {
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.checker.EXPECT().IsTableFree(gomock.Any(), table.ID, gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, reservation model.Reservation) error {
						assert.Equal(t, client.UserID, reservation.ClientID)
						assert.Equal(t, model.StatusActive, reservation.Status)
						assert.Equal(t, 18, reservation.StartTime.Hour())

						return nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), "reservation:gets*").Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "waiter books for a client",
			sess: waiter,
			mutate: func(req *dto.CreateReservationRequest) {
				req.ClientID = "c-2"
			},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "c-2", FullName: "Vera", Role: constant.RoleClient}, nil)
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.checker.EXPECT().IsTableFree(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, reservation model.Reservation) error {
						assert.Equal(t, "c-2", reservation.ClientID)
						assert.Equal(t, waiter.Login, reservation.CreatedBy)

						return nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name:      "non-positive guests",
			sess:      client,
			mutate:    func(req *dto.CreateReservationRequest) { req.Guests = 0 },
			setupMock: func(fixture) {},
			wantErr:   true,
			wantKind:  failure.KindInvalidInput,
		},
		{
			name:      "inverted interval",
			sess:      client,
			mutate:    func(req *dto.CreateReservationRequest) { req.EndTime = "17:00" },
			setupMock: func(fixture) {},
			wantErr:   true,
			wantKind:  failure.KindInvalidInput,
		},
		{
			name:   "unknown table",
			sess:   client,
			mutate: func(*dto.CreateReservationRequest) {},
			setupMock: func(f fixture) {
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tableModel.Table{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name:   "party larger than table",
			sess:   client,
			mutate: func(req *dto.CreateReservationRequest) { req.Guests = 6 },
			setupMock: func(f fixture) {
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidInput,
		},
		{
			name:   "table taken",
			sess:   client,
			mutate: func(*dto.CreateReservationRequest) {},
			setupMock: func(f fixture) {
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.checker.EXPECT().IsTableFree(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name:   "lost race on exclusion constraint",
			sess:   client,
			mutate: func(*dto.CreateReservationRequest) {},
			setupMock: func(f fixture) {
				f.tables.EXPECT().Get(gomock.Any(), gomock.Any()).Return(table, nil)
				f.checker.EXPECT().IsTableFree(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("reservation already exists"))
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := validRequest()
			tt.mutate(&req)

			res, err := f.svc.Create(context.Background(), tt.sess, req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 3, res.TableNumber)
			assert.Equal(t, "18:00", res.StartTime)
			assert.Equal(t, "2024-05-10", res.Date)
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	active := model.Reservation{ID: "r-1", ClientID: client.UserID, Status: model.StatusActive}

	tests := []struct {
		name      string
		sess      session.Session
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "owner cancels",
			sess: client,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
				f.repo.EXPECT().Cancel(gomock.Any(), "r-1", client.Login).Return(true, nil)
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "another client",
			sess: session.Session{UserID: "c-9", Role: constant.RoleClient},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
			},
			wantErr:  true,
			wantKind: failure.KindForbidden,
		},
		{
			name: "already cancelled",
			sess: waiter,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{ID: "r-1", Status: model.StatusCancelled}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidState,
		},
		{
			name: "cancelled concurrently",
			sess: waiter,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
				f.repo.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidState,
		},
		{
			name: "missing",
			sess: waiter,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Cancel(context.Background(), tt.sess, "r-1")

			if tt.wantErr {
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusCancelled, res.Status)
		})
	}
}

func TestReservationService_ListMine(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(reservations.client_id = :client_id)", where)
			assert.Equal(t, client.UserID, args["client_id"])

			return 1, nil
		})
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, "reservations.start_time", params.SortBy)

			return []model.Reservation{{ID: "r-1", ClientID: client.UserID, Status: model.StatusActive}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.ListMine(context.Background(), client, gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Reservations, 1)
}

func TestReservationService_List_BadDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListReservationsRequest{Date: "tomorrow"})

	assert.True(t, failure.Is(err, failure.KindInvalidInput))
}
