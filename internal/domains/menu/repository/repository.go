package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/menu/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/logger"
	gRepo "bistro/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	queryDecrementStock = `UPDATE dishes SET quantity = quantity - $2, modified_at = NOW(), modified_by = $3
		WHERE id = $1 AND quantity >= $2`

	queryDishReferenced = `SELECT EXISTS (SELECT 1 FROM order_items WHERE dish_id = $1)`
)

type Category interface {
	Insert(ctx context.Context, model model.Category) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Category, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type Dish interface {
	Insert(ctx context.Context, model model.Dish) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Dish, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Dish, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DecrementStockTx(ctx context.Context, sqltx *sqlx.Tx, dishID string, quantity int, actor string) (bool, error)
	Referenced(ctx context.Context, dishID string) (bool, error)
}

type categoryImpl struct {
	gRepo.Repository[model.Category]
}

func NewCategory(db *postgres.Connection, otel otel.Otel) Category {
	return &categoryImpl{
		Repository: gRepo.NewRepository[model.Category](model.CategoryEntityName, model.CategoryTableName, model.FieldID, db, otel),
	}
}

type dishImpl struct {
	gRepo.Repository[model.Dish]
	db   *postgres.Connection
	otel otel.Otel
}

func NewDish(db *postgres.Connection, otel otel.Otel) Dish {
	return &dishImpl{
		Repository: gRepo.NewRepository[model.Dish](model.DishEntityName, model.DishTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DecrementStockTx takes quantity portions off the dish. It reports false, changing nothing,
// when fewer than quantity remain.
func (repo *dishImpl) DecrementStockTx(ctx context.Context, sqltx *sqlx.Tx, dishID string, quantity int, actor string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dish.DecrementStockTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDecrementStock)

	result, err := sqltx.ExecContext(ctx, queryDecrementStock, dishID, quantity, actor)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to decrement stock: %w", err), "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

// Referenced reports whether any order line points at the dish.
func (repo *dishImpl) Referenced(ctx context.Context, dishID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dish.Referenced")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDishReferenced)

	var referenced bool

	if err := repo.db.Read.GetContext(ctx, &referenced, queryDishReferenced, dishID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to check dish references: %w", err), "")
	}

	return referenced, nil
}
