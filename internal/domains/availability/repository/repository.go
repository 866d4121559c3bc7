package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/availability/model"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/logger"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	queryHasActiveOrder = `SELECT EXISTS (SELECT 1 FROM orders WHERE table_id = $1 AND status = 'active')`

	queryOccupiedTables = `SELECT DISTINCT table_id FROM orders WHERE status = 'active'`

	queryTableBookings = `SELECT id, table_id, client_id, start_time, end_time FROM reservations
		WHERE table_id = $1 AND reservation_date = $2 AND status = 'active'
		ORDER BY start_time`

	queryDayBookings = `SELECT id, table_id, client_id, start_time, end_time FROM reservations
		WHERE reservation_date = $1 AND status = 'active'
		ORDER BY table_id, start_time`
)

// Availability reads the rows that decide whether a table can be used. The Tx variants
// read inside an open transaction so the answer holds until it commits.
type Availability interface {
	HasActiveOrder(ctx context.Context, tableID string) (bool, error)
	HasActiveOrderTx(ctx context.Context, sqltx *sqlx.Tx, tableID string) (bool, error)
	OccupiedTables(ctx context.Context) (map[string]bool, error)
	Bookings(ctx context.Context, tableID string, date time.Time) ([]model.Booking, error)
	BookingsTx(ctx context.Context, sqltx *sqlx.Tx, tableID string, date time.Time) ([]model.Booking, error)
	DayBookings(ctx context.Context, date time.Time) (map[string][]model.Booking, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) hasActiveOrder(ctx context.Context, q sqlx.QueryerContext, tableID string) (bool, error) {
	var exists bool

	if err := sqlx.GetContext(ctx, q, &exists, queryHasActiveOrder, tableID); err != nil {
		logger.ErrorWithStack(err)

		return false, failure.FromStorage(fmt.Errorf("failed to check active order: %w", err), "")
	}

	return exists, nil
}

func (repo *repositoryImpl) HasActiveOrder(ctx context.Context, tableID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.HasActiveOrder")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryHasActiveOrder)

	return repo.hasActiveOrder(ctx, repo.db.Read, tableID)
}

func (repo *repositoryImpl) HasActiveOrderTx(ctx context.Context, sqltx *sqlx.Tx, tableID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.HasActiveOrderTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryHasActiveOrder)

	return repo.hasActiveOrder(ctx, sqltx, tableID)
}

// OccupiedTables returns the set of tables that currently carry an active order.
func (repo *repositoryImpl) OccupiedTables(ctx context.Context) (map[string]bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.OccupiedTables")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryOccupiedTables)

	var ids []string

	if err := repo.db.Read.SelectContext(ctx, &ids, queryOccupiedTables); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.FromStorage(fmt.Errorf("failed to list occupied tables: %w", err), "")
	}

	occupied := make(map[string]bool, len(ids))
	for _, id := range ids {
		occupied[id] = true
	}

	return occupied, nil
}

func (repo *repositoryImpl) bookings(ctx context.Context, q sqlx.QueryerContext, tableID string, date time.Time) ([]model.Booking, error) {
	bookings := []model.Booking{}

	if err := sqlx.SelectContext(ctx, q, &bookings, queryTableBookings, tableID, date); err != nil {
		logger.ErrorWithStack(err)

		return nil, failure.FromStorage(fmt.Errorf("failed to list table bookings: %w", err), "")
	}

	return bookings, nil
}

func (repo *repositoryImpl) Bookings(ctx context.Context, tableID string, date time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Bookings")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTableBookings)

	return repo.bookings(ctx, repo.db.Read, tableID, date)
}

func (repo *repositoryImpl) BookingsTx(ctx context.Context, sqltx *sqlx.Tx, tableID string, date time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.BookingsTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTableBookings)

	return repo.bookings(ctx, sqltx, tableID, date)
}

// DayBookings groups the day's active reservations by table.
func (repo *repositoryImpl) DayBookings(ctx context.Context, date time.Time) (map[string][]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.DayBookings")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDayBookings)

	var bookings []model.Booking

	if err := repo.db.Read.SelectContext(ctx, &bookings, queryDayBookings, date); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.FromStorage(fmt.Errorf("failed to list bookings of the day: %w", err), "")
	}

	byTable := make(map[string][]model.Booking)
	for _, booking := range bookings {
		byTable[booking.TableID] = append(byTable[booking.TableID], booking)
	}

	return byTable, nil
}
