package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/shift/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/logger"
	gRepo "bistro/shared/repository"
	"context"
	"fmt"
	"time"
)

const (
	queryPaidTotal = `SELECT COALESCE(SUM(total), 0) FROM orders
		WHERE waiter_id = $1 AND status = 'paid' AND created_at >= $2 AND created_at <= $3`

	queryCloseShift = `UPDATE shifts SET end_time = $2, tips = $3, modified_at = $2, modified_by = $4
		WHERE id = $1 AND end_time IS NULL`
)

type Shift interface {
	Insert(ctx context.Context, model model.Shift) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Shift, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Shift, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	PaidTotal(ctx context.Context, waiterID string, from, to time.Time) (int64, error)
	Close(ctx context.Context, id string, end time.Time, tips int64, actor string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Shift]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Shift {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Shift](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// PaidTotal sums the totals of the waiter's paid orders created within [from, to].
func (repo *repositoryImpl) PaidTotal(ctx context.Context, waiterID string, from, to time.Time) (total int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".shift.PaidTotal")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryPaidTotal)

	if err = repo.db.Write.GetContext(ctx, &total, queryPaidTotal, waiterID, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, failure.FromStorage(fmt.Errorf("failed to sum paid orders: %w", err), "")
	}

	return total, nil
}

// Close ends an open shift. It reports false when the shift was already closed.
func (repo *repositoryImpl) Close(ctx context.Context, id string, end time.Time, tips int64, actor string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".shift.Close")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCloseShift)

	result, err := repo.db.Write.ExecContext(ctx, queryCloseShift, id, end, tips, actor)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to close shift: %w", err), "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

// OpenFilter matches the waiter's shift that has not ended yet.
func OpenFilter(waiterID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldWaiterID,
				Value:    waiterID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndTime,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}
}
