package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/table/model"
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
	queryLockTable = `SELECT id FROM tables WHERE id = $1 FOR UPDATE`

	queryAssignWaiter = `INSERT INTO waiter_tables (table_id, waiter_id, created_by, modified_by)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (table_id) DO UPDATE
		SET waiter_id = EXCLUDED.waiter_id, modified_at = NOW(), modified_by = EXCLUDED.modified_by`

	queryWaiterOf = `SELECT waiter_id FROM waiter_tables WHERE table_id = $1`
)

type Table interface {
	Insert(ctx context.Context, model model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error)
	AssignWaiter(ctx context.Context, tableID, waiterID, actor string) error
	WaiterOf(ctx context.Context, tableID string) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LockTx takes a row lock on the table until the transaction ends. It reports false for an
// unknown table.
func (repo *repositoryImpl) LockTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.LockTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLockTable)

	var locked string

	if err := sqltx.GetContext(ctx, &locked, queryLockTable, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.FromStorage(fmt.Errorf("failed to lock table: %w", err), "")
	}

	return true, nil
}

// AssignWaiter replaces the table's waiter.
func (repo *repositoryImpl) AssignWaiter(ctx context.Context, tableID, waiterID, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.AssignWaiter")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryAssignWaiter)

	if _, err := repo.db.Write.ExecContext(ctx, queryAssignWaiter, tableID, waiterID, actor); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.FromStorage(fmt.Errorf("failed to assign waiter: %w", err), "")
	}

	return nil
}

// WaiterOf returns the waiter assigned to the table, or an empty string when there is none.
func (repo *repositoryImpl) WaiterOf(ctx context.Context, tableID string) (string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.WaiterOf")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryWaiterOf)

	var waiterID string

	if err := repo.db.Read.GetContext(ctx, &waiterID, queryWaiterOf, tableID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return constant.Empty, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, failure.FromStorage(fmt.Errorf("failed to get table waiter: %w", err), "")
	}

	return waiterID, nil
}
