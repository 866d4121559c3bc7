package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/order/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/logger"
	gRepo "bistro/shared/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	queryLockOrder = `SELECT status FROM orders WHERE id = $1 FOR UPDATE`

	queryTransition = `UPDATE orders SET status = $3, modified_at = NOW(), modified_by = $4
		WHERE id = $1 AND status = $2`

	queryRecomputeTotal = `UPDATE orders
		SET total = (SELECT COALESCE(SUM(quantity * price), 0) FROM order_items WHERE order_id = $1),
			modified_at = NOW(), modified_by = $2
		WHERE id = $1
		RETURNING total`

	queryMarkReceipt = `UPDATE orders SET receipt_printed = TRUE, receipt_url = $2, modified_at = NOW(), modified_by = $3
		WHERE id = $1`

	queryMergeItem = `UPDATE order_items SET quantity = quantity + $4
		WHERE id = (SELECT id FROM order_items WHERE order_id = $1 AND dish_id = $2 AND price = $3 LIMIT 1)`
)

type Order interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Order) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (string, error)
	RecomputeTotalTx(ctx context.Context, sqltx *sqlx.Tx, id, actor string) (int64, error)
	Transition(ctx context.Context, id, from, to, actor string) (bool, error)
	MarkReceipt(ctx context.Context, id, url, actor string) error
}

type Item interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Item) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Item) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	MergeTx(ctx context.Context, sqltx *sqlx.Tx, item model.Item) (bool, error)
}

type orderImpl struct {
	gRepo.Repository[model.Order]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOrder(db *postgres.Connection, otel otel.Otel) Order {
	return &orderImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LockTx locks the order row and returns its status, or an empty status for an unknown order.
func (repo *orderImpl) LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.LockTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLockOrder)

	var status string

	if err := sqltx.GetContext(ctx, &status, queryLockOrder, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return constant.Empty, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, failure.FromStorage(fmt.Errorf("failed to lock order: %w", err), "")
	}

	return status, nil
}

// RecomputeTotalTx sets the order total from its lines and returns it.
func (repo *orderImpl) RecomputeTotalTx(ctx context.Context, sqltx *sqlx.Tx, id, actor string) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.RecomputeTotalTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryRecomputeTotal)

	var total int64

	if err := sqltx.GetContext(ctx, &total, queryRecomputeTotal, id, actor); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, failure.FromStorage(fmt.Errorf("failed to recompute order total: %w", err), "")
	}

	return total, nil
}

// Transition moves the order from one status to another. It reports false when the order was
// not in the expected status.
func (repo *orderImpl) Transition(ctx context.Context, id, from, to, actor string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.Transition")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTransition)

	result, err := repo.db.Write.ExecContext(ctx, queryTransition, id, from, to, actor)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to change order status: %w", err), "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

func (repo *orderImpl) MarkReceipt(ctx context.Context, id, url, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.MarkReceipt")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryMarkReceipt)

	if _, err := repo.db.Write.ExecContext(ctx, queryMarkReceipt, id, url, actor); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.FromStorage(fmt.Errorf("failed to mark receipt: %w", err), "")
	}

	return nil
}

type itemImpl struct {
	gRepo.Repository[model.Item]
	otel otel.Otel
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemImpl{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// MergeTx adds the item's quantity to an existing line with the same dish and unit price.
// It reports false when no such line exists.
func (repo *itemImpl) MergeTx(ctx context.Context, sqltx *sqlx.Tx, item model.Item) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".item.MergeTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryMergeItem)

	result, err := sqltx.ExecContext(ctx, queryMergeItem, item.OrderID, item.DishID, item.Price, item.Quantity)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to merge order item: %w", err), "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
