package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Shift=MockShiftService

import (
	"bistro/infras/otel"
	"bistro/internal/domains/shift/model"
	"bistro/internal/domains/shift/model/dto"
	"bistro/internal/domains/shift/repository"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/event"
	"bistro/shared/failure"
	"bistro/shared/metrics"
	"bistro/shared/session"
	"bistro/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Shift interface {
	Start(ctx context.Context, sess session.Session) (dto.ShiftResponse, error)
	Close(ctx context.Context, sess session.Session, shiftID string) (dto.CloseShiftResponse, error)
	Current(ctx context.Context, sess session.Session) (dto.ShiftResponse, error)
	List(ctx context.Context, req dto.ListShiftsRequest, params gDto.QueryParams) (dto.GetShiftsResponse, error)
}

type serviceImpl struct {
	repo      repository.Shift
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Shift, publisher event.Publisher, otel otel.Otel) Shift {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Start(ctx context.Context, sess session.Session) (res dto.ShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	open, err := s.repo.Exist(ctx, repository.OpenFilter(sess.UserID))
	if err != nil {
		log.Error().Err(err).Str("waiter", sess.UserID).Msg("failed to look up open shift")

		return res, fmt.Errorf("failed to look up open shift: %w", err)
	}

	if open {
		return res, failure.InvalidState("shift already open")
	}

	shift := dto.NewShift(sess.UserID, sess.Login, timezone.Now())

	if err = s.repo.Insert(ctx, shift); err != nil {
		// a concurrent start lost the race on the open-shift index
		if failure.Is(err, failure.KindConflict) {
			return res, failure.InvalidState("shift already open")
		}

		log.Error().Err(err).Str("waiter", sess.UserID).Msg("failed to start shift")

		return res, fmt.Errorf("failed to start shift: %w", err)
	}

	shift.WaiterName = sess.Name
	res.FromModel(shift)

	return res, nil
}

func (s *serviceImpl) Close(ctx context.Context, sess session.Session, shiftID string) (res dto.CloseShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	shift, err := s.repo.Get(ctx, shared.FilterByID(shiftID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("shift", shiftID).Msg("failed to get shift")

		return res, fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty || shift.WaiterID != sess.UserID {
		return res, failure.NotFound("shift not found")
	}

	if !shift.Open() {
		return res, failure.InvalidState("shift already closed")
	}

	now := timezone.Now()

	paid, err := s.repo.PaidTotal(ctx, shift.WaiterID, shift.StartTime, now)
	if err != nil {
		log.Error().Err(err).Str("shift", shiftID).Msg("failed to sum paid orders")

		return res, fmt.Errorf("failed to sum paid orders: %w", err)
	}

	tips := model.Tips(paid)

	closed, err := s.repo.Close(ctx, shift.ID, now, tips, sess.Login)
	if err != nil {
		log.Error().Err(err).Str("shift", shiftID).Msg("failed to close shift")

		return res, fmt.Errorf("failed to close shift: %w", err)
	}

	if !closed {
		return res, failure.InvalidState("shift already closed")
	}

	metrics.ShiftsClosed.Inc()
	metrics.TipsSettled.Add(float64(tips))

	s.publisher.Publish(ctx, event.New(event.ShiftClosed, shift.ID, sess.Login, map[string]any{
		"waiter_id": shift.WaiterID,
		"paid_sum":  paid,
		"tips":      tips,
	}))

	res = dto.CloseShiftResponse{
		ShiftID:  shift.ID,
		PaidSum:  paid,
		Tips:     tips,
		EndTime:  timezone.Format(now, constant.DateFormat),
		Duration: int64(now.Sub(shift.StartTime).Minutes()),
	}

	return res, nil
}

func (s *serviceImpl) Current(ctx context.Context, sess session.Session) (res dto.ShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Current")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	shift, err := s.repo.Get(ctx, repository.OpenFilter(sess.UserID))
	if err != nil {
		log.Error().Err(err).Str("waiter", sess.UserID).Msg("failed to get current shift")

		return res, fmt.Errorf("failed to get current shift: %w", err)
	}

	if shift.ID == constant.Empty {
		return res, failure.NotFound("no open shift")
	}

	res.FromModel(shift)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListShiftsRequest, params gDto.QueryParams) (res dto.GetShiftsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Month < 1 || req.Month > 12 {
		return res, failure.BadRequestFromString("month must be between 1 and 12")
	}

	from, to := timezone.MonthRange(req.Month, req.Year)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartTime,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
				ArgName:  "from",
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				Value:    to,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
				ArgName:  "to",
			},
		},
	}

	if req.WaiterID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldWaiterID,
			Value:    req.WaiterID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shifts")

		return res, fmt.Errorf("failed to count shifts: %w", err)
	}

	params.SortBy = model.TableName + "." + model.FieldStartTime
	params.SortDir = gDto.SortDirDesc

	shifts, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list shifts")

		return res, fmt.Errorf("failed to list shifts: %w", err)
	}

	res.FromModels(shifts, total, params.Limit)

	return res, nil
}
