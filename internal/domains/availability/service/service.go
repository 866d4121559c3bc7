package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/internal/domains/availability/model"
	"bistro/internal/domains/availability/repository"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Projector returns a table's derived state at the instant it was built for.
type Projector func(tableID string) model.Projection

// Checker answers whether tables can be booked or seated. All methods are pure reads.
type Checker interface {
	IsTableFree(ctx context.Context, tableID string, interval model.Interval) (bool, error)
	CanSeatNow(ctx context.Context, sqltx *sqlx.Tx, tableID, clientID string, now time.Time) error
	Snapshot(ctx context.Context, at time.Time) (Projector, error)
}

type checkerImpl struct {
	repo repository.Availability
	otel otel.Otel
}

func New(repo repository.Availability, otel otel.Otel) Checker {
	return &checkerImpl{
		repo: repo,
		otel: otel,
	}
}

// IsTableFree reports false when the table has an active order or an active reservation
// on the interval's day that overlaps it.
func (c *checkerImpl) IsTableFree(ctx context.Context, tableID string, interval model.Interval) (free bool, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.IsTableFree")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupied, err := c.repo.HasActiveOrder(ctx, tableID)
	if err != nil {
		log.Error().Err(err).Str("table", tableID).Msg("failed to check active order")

		return false, fmt.Errorf("failed to check active order: %w", err)
	}

	if occupied {
		return false, nil
	}

	bookings, err := c.repo.Bookings(ctx, tableID, interval.Date())
	if err != nil {
		log.Error().Err(err).Str("table", tableID).Msg("failed to list bookings")

		return false, fmt.Errorf("failed to list bookings: %w", err)
	}

	for _, booking := range bookings {
		if booking.Interval().Overlaps(interval) {
			return false, nil
		}
	}

	return true, nil
}

// CanSeatNow checks, inside the order transaction, that the table has no active order and
// is not held by another client's reservation covering now. An empty clientID is a walk-in,
// so staff seating a reservation holder must name the holder.
func (c *checkerImpl) CanSeatNow(ctx context.Context, sqltx *sqlx.Tx, tableID, clientID string, now time.Time) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CanSeatNow")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupied, err := c.repo.HasActiveOrderTx(ctx, sqltx, tableID)
	if err != nil {
		return fmt.Errorf("failed to check active order: %w", err)
	}

	if occupied {
		return failure.Conflict("table already has an active order")
	}

	day := timezone.StartOfDay(now)

	bookings, err := c.repo.BookingsTx(ctx, sqltx, tableID, day)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	for _, booking := range bookings {
		if booking.Interval().Contains(now) && booking.ClientID != clientID {
			return failure.Conflict("table is reserved by another client; seat the holder by passing their client_id")
		}
	}

	return nil
}

// Snapshot loads every table's active orders and the day's reservations once and returns
// a projector for the instant.
func (c *checkerImpl) Snapshot(ctx context.Context, at time.Time) (project Projector, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupied, err := c.repo.OccupiedTables(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list occupied tables")

		return nil, fmt.Errorf("failed to list occupied tables: %w", err)
	}

	day := timezone.StartOfDay(at)

	bookings, err := c.repo.DayBookings(ctx, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings of the day")

		return nil, fmt.Errorf("failed to list bookings of the day: %w", err)
	}

	return func(tableID string) model.Projection {
		return model.Project(occupied[tableID], bookings[tableID], at)
	}, nil
}
