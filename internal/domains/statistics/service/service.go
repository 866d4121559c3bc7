package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Statistics=MockStatisticsService

import (
	"bistro/config"
	"bistro/infras/otel"
	"bistro/internal/domains/statistics/model"
	"bistro/internal/domains/statistics/model/dto"
	"bistro/internal/domains/statistics/repository"
	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/timezone"
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheSales        = model.CacheStatistics + ":sales"
	cacheReservations = model.CacheStatistics + ":reservations"
	cacheWaiters      = model.CacheStatistics + ":waiters"

	minYear = 2000
	maxYear = 9999
)

type Statistics interface {
	Sales(ctx context.Context, req dto.MonthRequest) (dto.SalesResponse, error)
	Reservations(ctx context.Context, req dto.MonthRequest) (dto.ReservationsResponse, error)
	Waiters(ctx context.Context, req dto.MonthRequest) (dto.WaitersResponse, error)
	Sessions(ctx context.Context, req dto.PeriodRequest) (dto.SessionsResponse, error)
}

type serviceImpl struct {
	repo  repository.Statistics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Statistics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Statistics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Sales(ctx context.Context, req dto.MonthRequest) (res dto.SalesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Sales")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateMonth(req); err != nil {
		return res, err
	}

	from, to := timezone.MonthRange(req.Month, req.Year)
	cacheKey, settled := monthKey(cacheSales, req), !to.After(timezone.Now())

	if settled && s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	sales, err := s.repo.Sales(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Int("month", req.Month).Int("year", req.Year).Msg("failed to build sales report")

		return res, fmt.Errorf("failed to build sales report: %w", err)
	}

	res.FromModels(req.Month, req.Year, sales)

	if settled {
		s.remember(ctx, cacheKey, res)
	}

	return res, nil
}

func (s *serviceImpl) Reservations(ctx context.Context, req dto.MonthRequest) (res dto.ReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Reservations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateMonth(req); err != nil {
		return res, err
	}

	from, to := timezone.MonthRange(req.Month, req.Year)
	cacheKey, settled := monthKey(cacheReservations, req), !to.After(timezone.Now())

	if settled && s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	tables, err := s.repo.Reservations(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Int("month", req.Month).Int("year", req.Year).Msg("failed to build reservations report")

		return res, fmt.Errorf("failed to build reservations report: %w", err)
	}

	res.FromModels(req.Month, req.Year, tables)

	if settled {
		s.remember(ctx, cacheKey, res)
	}

	return res, nil
}

func (s *serviceImpl) Waiters(ctx context.Context, req dto.MonthRequest) (res dto.WaitersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Waiters")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateMonth(req); err != nil {
		return res, err
	}

	from, to := timezone.MonthRange(req.Month, req.Year)
	cacheKey, settled := monthKey(cacheWaiters, req), !to.After(timezone.Now())

	if settled && s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	rows, err := s.repo.Waiters(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Int("month", req.Month).Int("year", req.Year).Msg("failed to build waiters report")

		return res, fmt.Errorf("failed to build waiters report: %w", err)
	}

	res.FromModels(req.Month, req.Year, rows)

	if settled {
		s.remember(ctx, cacheKey, res)
	}

	return res, nil
}

// Sessions is never cached; it is bounded by arbitrary dates rather than a closed month.
func (s *serviceImpl) Sessions(ctx context.Context, req dto.PeriodRequest) (res dto.SessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Sessions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, err := timezone.Date(req.From)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	to, err := timezone.Date(req.To)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if to.Before(from) {
		return res, failure.BadRequestFromString("from must not be after to")
	}

	sessions, err := s.repo.Sessions(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Str("from", req.From).Str("to", req.To).Msg("failed to build sessions report")

		return res, fmt.Errorf("failed to build sessions report: %w", err)
	}

	res.FromModels(req.From, req.To, sessions)

	return res, nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save report to cache")
	}
}

func validateMonth(req dto.MonthRequest) error {
	if req.Month < 1 || req.Month > 12 {
		return failure.BadRequestFromString("month must be between 1 and 12")
	}

	if req.Year < minYear || req.Year > maxYear {
		return failure.BadRequestFromString(fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
	}

	return nil
}

// monthKey names a report of a month that has ended. Reports of the running month are
// built live so new orders and reservations show up at once.
func monthKey(prefix string, req dto.MonthRequest) string {
	return shared.BuildCacheKey(prefix, strconv.Itoa(req.Year), strconv.Itoa(req.Month))
}
