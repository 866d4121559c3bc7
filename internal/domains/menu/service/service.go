package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bistro/config"
	"bistro/infras/otel"
	"bistro/internal/domains/menu/model"
	"bistro/internal/domains/menu/model/dto"
	"bistro/internal/domains/menu/repository"
	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/session"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

var sortableColumns = map[string]string{
	model.FieldName:     model.DishTableName + "." + model.FieldName,
	model.FieldPrice:    model.DishTableName + "." + model.FieldPrice,
	model.FieldQuantity: model.DishTableName + "." + model.FieldQuantity,
}

type Menu interface {
	CreateCategory(ctx context.Context, sess session.Session, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	ListCategories(ctx context.Context) (dto.GetCategoriesResponse, error)
	CreateDish(ctx context.Context, sess session.Session, req dto.CreateDishRequest) (dto.DishResponse, error)
	UpdateDish(ctx context.Context, sess session.Session, id string, req dto.UpdateDishRequest) (dto.DishResponse, error)
	GetDish(ctx context.Context, id string) (dto.DishResponse, error)
	ListDishes(ctx context.Context, params gDto.QueryParams, req dto.ListDishesRequest) (dto.GetDishesResponse, error)
	DeleteDish(ctx context.Context, id string) error
}

type serviceImpl struct {
	categories repository.Category
	dishes     repository.Dish
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(categories repository.Category, dishes repository.Dish, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Menu {
	return &serviceImpl{
		categories: categories,
		dishes:     dishes,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) CreateCategory(ctx context.Context, sess session.Session, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.CreateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	category := req.ToModel(sess.Login)

	if err = s.categories.Insert(ctx, category); err != nil {
		if failure.Is(err, failure.KindConflict) {
			return res, failure.Conflict(fmt.Sprintf("category %q already exists", req.Name))
		}

		log.Error().Err(err).Msg("failed to create category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheCategoryList)

	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) ListCategories(ctx context.Context) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.ListCategories")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, model.CacheCategoryList, &res); err == nil {
		return res, nil
	}

	categories, err := s.categories.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.CategoryTableName + "." + model.FieldName,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get categories")

		return res, fmt.Errorf("failed to get categories: %w", err)
	}

	res.FromModels(categories)

	if err := s.cache.Save(ctx, model.CacheCategoryList, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save categories to cache")
	}

	return res, nil
}

func (s *serviceImpl) CreateDish(ctx context.Context, sess session.Session, req dto.CreateDishRequest) (res dto.DishResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.CreateDish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Price <= 0 {
		return res, failure.BadRequestFromString("price must be positive")
	}

	if req.Quantity < 0 {
		return res, failure.BadRequestFromString("quantity must not be negative")
	}

	if err = s.requireCategory(ctx, req.CategoryID); err != nil {
		return res, err
	}

	dish := req.ToModel(sess.Login)

	if err = s.dishes.Insert(ctx, dish); err != nil {
		if failure.Is(err, failure.KindConflict) {
			return res, failure.Conflict(fmt.Sprintf("dish %q already exists", req.Name))
		}

		log.Error().Err(err).Msg("failed to create dish")

		return res, fmt.Errorf("failed to create dish: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheDishList)

	res.FromModel(dish)

	return res, nil
}

func (s *serviceImpl) UpdateDish(ctx context.Context, sess session.Session, id string, req dto.UpdateDishRequest) (res dto.DishResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.UpdateDish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	if req.Price != nil && *req.Price <= 0 {
		return res, failure.BadRequestFromString("price must be positive")
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		return res, failure.BadRequestFromString("quantity must not be negative")
	}

	filter := shared.FilterByID(id, model.FieldID, model.DishTableName)

	exist, err := s.dishes.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dish exists")

		return res, fmt.Errorf("failed to check if dish exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("dish not found")
	}

	if req.CategoryID != nil {
		if err = s.requireCategory(ctx, *req.CategoryID); err != nil {
			return res, err
		}
	}

	if err = s.dishes.Update(ctx, shared.TransformFields(req, sess.Login), filter); err != nil {
		if failure.Is(err, failure.KindConflict) {
			return res, failure.Conflict("dish name already taken")
		}

		log.Error().Err(err).Msg("failed to update dish")

		return res, fmt.Errorf("failed to update dish: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheDishList)

	return s.GetDish(ctx, id)
}

// GetDish always reads the live row; stock checks depend on it.
func (s *serviceImpl) GetDish(ctx context.Context, id string) (res dto.DishResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.GetDish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	dish, err := s.dishes.Get(ctx, shared.FilterByID(id, model.FieldID, model.DishTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dish")

		return res, fmt.Errorf("failed to get dish: %w", err)
	}

	if dish.ID == constant.Empty {
		return res, failure.NotFound("dish not found")
	}

	res.FromModel(dish)

	return res, nil
}

func (s *serviceImpl) ListDishes(ctx context.Context, params gDto.QueryParams, req dto.ListDishesRequest) (res dto.GetDishesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.ListDishes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if req.CategoryID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Value:    req.CategoryID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.DishTableName,
		})
	}

	if req.Name != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldName,
			Value:    req.Name,
			Operator: gDto.FilterOperatorLike,
			Table:    model.DishTableName,
		})
	}

	if req.InStock != nil {
		operator, threshold := gDto.FilterOperatorGreaterEq, 1
		if !*req.InStock {
			operator, threshold = gDto.FilterOperatorLessEq, 0
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldQuantity,
			Value:    threshold,
			Operator: operator,
			Table:    model.DishTableName,
		})
	}

	params = shared.RestrictSort(params, sortableColumns, model.DishTableName+"."+model.FieldName, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheDishList, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dishes")

		return res, nil
	}

	total, err := s.dishes.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count dishes")

		return res, fmt.Errorf("failed to count dishes: %w", err)
	}

	dishes, err := s.dishes.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get dishes")

		return res, fmt.Errorf("failed to get dishes: %w", err)
	}

	res.FromModels(dishes, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save dishes to cache")
	}

	return res, nil
}

func (s *serviceImpl) DeleteDish(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".menu.DeleteDish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.DishTableName)

	exist, err := s.dishes.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if dish exists")

		return fmt.Errorf("failed to check if dish exists: %w", err)
	}

	if !exist {
		return failure.NotFound("dish not found")
	}

	referenced, err := s.dishes.Referenced(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check dish references")

		return fmt.Errorf("failed to check dish references: %w", err)
	}

	if referenced {
		return failure.InvalidState("dish appears on orders and cannot be deleted")
	}

	if err = s.dishes.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete dish")

		return fmt.Errorf("failed to delete dish: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheDishList)

	return nil
}

func (s *serviceImpl) requireCategory(ctx context.Context, categoryID string) error {
	exist, err := s.categories.Exist(ctx, shared.FilterByID(categoryID, model.FieldID, model.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("category does not exist")
	}

	return nil
}
