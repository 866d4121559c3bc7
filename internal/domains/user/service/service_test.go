package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/otel/mocks"
	userMocks "bistro/internal/domains/user/mocks"
	"bistro/internal/domains/user/model"
	"bistro/internal/domains/user/model/dto"
	"bistro/internal/domains/user/service"
	cacheMocks "bistro/shared/cache/mocks"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/session"
)

var admin = session.Session{UserID: "admin-1", Login: "admin", Name: "Administrator", Role: constant.RoleAdmin}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	req := dto.CreateUserRequest{Login: "anna", Password: "password1", FullName: "Anna K", Role: constant.RoleWaiter}

	tests := []struct {
		name      string
		setupMock func()
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "creates waiter account",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "anna", user.Login)
						assert.Equal(t, constant.RoleIDWaiter, user.RoleID)
						assert.NotEqual(t, req.Password, user.Password)
						assert.Equal(t, admin.Login, user.CreatedBy)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(nil)
			},
		},
		{
			name: "duplicate login",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "storage failure",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantErr:  true,
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), admin, req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.RoleWaiter, res.Role)
			assert.True(t, res.Active)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	waiters := []model.User{
		{ID: "w-1", Login: "anna", FullName: "Anna K", Role: constant.RoleWaiter},
		{ID: "w-2", Login: "boris", FullName: "Boris P", Role: constant.RoleWaiter},
	}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(roles.name = :role)", where)
			assert.Equal(t, constant.RoleWaiter, args["role"])

			return 2, nil
		})
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.Equal(t, "users.full_name", params.SortBy)

			return waiters, nil
		})
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, constant.RoleWaiter)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Users, 2)
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "user:get:missing", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.Is(err, failure.KindNotFound))
	})

	t.Run("found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "user:get:w-1", gomock.Any()).Return(errors.New("miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "w-1", Login: "anna", Role: constant.RoleWaiter}, nil)
		mockCache.EXPECT().Save(gomock.Any(), "user:get:w-1", gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Get(context.Background(), "w-1")

		assert.NoError(t, err)
		assert.Equal(t, "anna", res.Login)
	})
}
