package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/internal/domains/statistics/model"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/logger"
	"context"
	"fmt"
	"time"
)

const (
	querySales = `SELECT dc.id AS category_id, dc.name AS category, d.id AS dish_id, d.name AS dish,
			SUM(oi.quantity) AS quantity, SUM(oi.price * oi.quantity) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN dishes d ON d.id = oi.dish_id
		JOIN dish_categories dc ON dc.id = d.category_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY dc.id, dc.name, d.id, d.name
		ORDER BY dc.name, dc.id, d.name`

	queryReservations = `SELECT t.id AS table_id, t.number AS table_number, COUNT(r.id) AS reservations
		FROM tables t
		LEFT JOIN reservations r ON r.table_id = t.id AND r.status = 'active'
			AND r.reservation_date >= $1 AND r.reservation_date < $2
		GROUP BY t.id, t.number
		ORDER BY t.number`

	queryWaiters = `SELECT u.id AS waiter_id, u.full_name AS waiter_name,
			COALESCE(o.orders, 0) AS orders, COALESCE(o.paid_orders, 0) AS paid_orders,
			COALESCE(o.paid_sum, 0) AS paid_sum, COALESCE(s.tips, 0) AS tips
		FROM users u
		JOIN roles ON roles.id = u.role_id
		LEFT JOIN (
			SELECT waiter_id, COUNT(*) AS orders,
				COUNT(*) FILTER (WHERE status = 'paid') AS paid_orders,
				SUM(total) FILTER (WHERE status = 'paid') AS paid_sum
			FROM orders
			WHERE created_at >= $1 AND created_at < $2
			GROUP BY waiter_id
		) o ON o.waiter_id = u.id
		LEFT JOIN (
			SELECT waiter_id, SUM(tips) AS tips
			FROM shifts
			WHERE start_time >= $1 AND start_time < $2
			GROUP BY waiter_id
		) s ON s.waiter_id = u.id
		WHERE roles.name = 'waiter'
		ORDER BY u.full_name`

	querySessions = `SELECT r.id AS reservation_id, u.id AS client_id, u.full_name AS client_name,
			t.id AS table_id, t.number AS table_number, r.start_time, r.end_time
		FROM reservations r
		JOIN users u ON u.id = r.client_id
		JOIN tables t ON t.id = r.table_id
		WHERE r.status = 'active' AND r.reservation_date >= $1 AND r.reservation_date <= $2
		ORDER BY r.start_time DESC`
)

// Statistics runs the read-only reports over orders, reservations and shifts.
type Statistics interface {
	Sales(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	Reservations(ctx context.Context, from, to time.Time) ([]model.TableReservations, error)
	Waiters(ctx context.Context, from, to time.Time) ([]model.WaiterPerformance, error)
	Sessions(ctx context.Context, from, to time.Time) ([]model.Session, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Statistics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Sales(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	rows := []model.Sale{}

	return rows, repo.selectReport(ctx, "Sales", &rows, querySales, from, to)
}

func (repo *repositoryImpl) Reservations(ctx context.Context, from, to time.Time) ([]model.TableReservations, error) {
	rows := []model.TableReservations{}

	return rows, repo.selectReport(ctx, "Reservations", &rows, queryReservations, from, to)
}

func (repo *repositoryImpl) Waiters(ctx context.Context, from, to time.Time) ([]model.WaiterPerformance, error) {
	rows := []model.WaiterPerformance{}

	return rows, repo.selectReport(ctx, "Waiters", &rows, queryWaiters, from, to)
}

// Sessions lists active reservations dated within [from, to].
func (repo *repositoryImpl) Sessions(ctx context.Context, from, to time.Time) ([]model.Session, error) {
	rows := []model.Session{}

	return rows, repo.selectReport(ctx, "Sessions", &rows, querySessions, from, to)
}

func (repo *repositoryImpl) selectReport(ctx context.Context, name string, dest any, query string, from, to time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".statistics."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := repo.db.Read.SelectContext(ctx, dest, query, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.FromStorage(fmt.Errorf("failed to build %s report: %w", name, err), "")
	}

	return nil
}
