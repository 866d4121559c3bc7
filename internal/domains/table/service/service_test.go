package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/infras/otel/mocks"
	availabilityMocks "bistro/internal/domains/availability/mocks"
	availability "bistro/internal/domains/availability/model"
	availabilitySvc "bistro/internal/domains/availability/service"
	tableMocks "bistro/internal/domains/table/mocks"
	"bistro/internal/domains/table/model"
	"bistro/internal/domains/table/model/dto"
	"bistro/internal/domains/table/service"
	userMocks "bistro/internal/domains/user/mocks"
	userModel "bistro/internal/domains/user/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/session"
)

var admin = session.Session{UserID: "admin-1", Login: "admin", Name: "Administrator", Role: constant.RoleAdmin}

type fixture struct {
	repo    *tableMocks.MockTable
	users   *userMocks.MockUser
	checker *availabilityMocks.MockChecker
	svc     service.Table
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    tableMocks.NewMockTable(ctrl),
		users:   userMocks.NewMockUser(ctrl),
		checker: availabilityMocks.NewMockChecker(ctrl),
	}
	f.svc = service.New(f.repo, f.users, f.checker, mocks.NewOtel())

	return f
}

func TestTableService_Create(t *testing.T) {
	t.Run("creates table", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, table model.Table) error {
				assert.Equal(t, 4, table.Number)
				assert.Equal(t, admin.Login, table.CreatedBy)

				return nil
			})

		res, err := f.svc.Create(context.Background(), admin, dto.CreateTableRequest{Number: 4, Capacity: 6})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, 6, res.Capacity)
	})

	t.Run("duplicate number", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("table already exists"))

		_, err := f.svc.Create(context.Background(), admin, dto.CreateTableRequest{Number: 4, Capacity: 6})

		assert.True(t, failure.Is(err, failure.KindConflict))
	})
}

func TestTableService_List(t *testing.T) {
	f := newFixture(t)

	anna := "Anna K"
	tables := []model.Table{
		{ID: "t-1", Number: 1, Capacity: 2, WaiterName: &anna},
		{ID: "t-2", Number: 2, Capacity: 4},
	}

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tables, nil)
	f.checker.EXPECT().
		Snapshot(gomock.Any(), gomock.Any()).
		Return(availabilitySvc.Projector(func(tableID string) availability.Projection {
			if tableID == "t-2" {
				return availability.Projection{Status: availability.StatusOccupied}
			}

			return availability.Projection{Status: availability.StatusFree}
		}), nil)

	res, err := f.svc.List(context.Background(), dto.ListTablesRequest{Date: "2024-05-10", Time: "19:30"})

	assert.NoError(t, err)
	assert.Len(t, res.Tables, 2)
	assert.Equal(t, availability.StatusFree, res.Tables[0].Status)
	assert.Equal(t, "Anna K", res.Tables[0].WaiterName)
	assert.Equal(t, availability.StatusOccupied, res.Tables[1].Status)
	assert.Contains(t, res.At, "2024-05-10T19:30:00")
}

func TestTableService_Available(t *testing.T) {
	t.Run("inverted interval", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Available(context.Background(), dto.AvailableTablesRequest{Date: "2024-05-10", StartTime: "20:00", EndTime: "18:00", Guests: 2})

		assert.True(t, failure.Is(err, failure.KindInvalidInput))
	})

	t.Run("filters by capacity and freedom", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Table, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(tables.capacity >= :capacity)", where)
				assert.Equal(t, 3, args["capacity"])

				return []model.Table{{ID: "t-1", Number: 1, Capacity: 4}, {ID: "t-2", Number: 2, Capacity: 6}}, nil
			})
		f.checker.EXPECT().IsTableFree(gomock.Any(), "t-1", gomock.Any()).Return(false, nil)
		f.checker.EXPECT().IsTableFree(gomock.Any(), "t-2", gomock.Any()).Return(true, nil)

		res, err := f.svc.Available(context.Background(), dto.AvailableTablesRequest{Date: "2024-05-10", StartTime: "18:00", EndTime: "20:00", Guests: 3})

		assert.NoError(t, err)
		assert.Len(t, res.Tables, 1)
		assert.Equal(t, "t-2", res.Tables[0].ID)
	})
}

func TestTableService_AssignWaiter(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "assigns waiter",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t-1", Number: 1}, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "w-1", FullName: "Anna K", Role: constant.RoleWaiter, Active: true}, nil)
				f.repo.EXPECT().AssignWaiter(gomock.Any(), "t-1", "w-1", admin.Login).Return(nil)
			},
		},
		{
			name: "missing table",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "user is not a waiter",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t-1"}, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "c-1", Role: constant.RoleClient, Active: true}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AssignWaiter(context.Background(), admin, "t-1", dto.AssignWaiterRequest{WaiterID: "w-1"})

			if tt.wantErr {
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Anna K", res.WaiterName)
		})
	}
}
