package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/reservation/model"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/logger"
	gRepo "bistro/shared/repository"
	"context"
	"fmt"
)

const queryCancelReservation = `UPDATE reservations SET status = 'cancelled', modified_at = NOW(), modified_by = $2
	WHERE id = $1 AND status = 'active'`

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Cancel(ctx context.Context, id, actor string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Cancel moves an active reservation to cancelled. It reports false when it was not active.
func (repo *repositoryImpl) Cancel(ctx context.Context, id, actor string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Cancel")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCancelReservation)

	result, err := repo.db.Write.ExecContext(ctx, queryCancelReservation, id, actor)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to cancel reservation: %w", err), "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}
