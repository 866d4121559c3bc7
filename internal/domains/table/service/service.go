package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Table=MockTableService

import (
	"bistro/infras/otel"
	availability "bistro/internal/domains/availability/model"
	availabilitySvc "bistro/internal/domains/availability/service"
	"bistro/internal/domains/table/model"
	"bistro/internal/domains/table/model/dto"
	"bistro/internal/domains/table/repository"
	userModel "bistro/internal/domains/user/model"
	userRepo "bistro/internal/domains/user/repository"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/session"
	"bistro/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Table interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateTableRequest) (dto.TableResponse, error)
	List(ctx context.Context, req dto.ListTablesRequest) (dto.FloorResponse, error)
	Available(ctx context.Context, req dto.AvailableTablesRequest) (dto.AvailableTablesResponse, error)
	AssignWaiter(ctx context.Context, sess session.Session, tableID string, req dto.AssignWaiterRequest) (dto.TableResponse, error)
}

type serviceImpl struct {
	repo    repository.Table
	users   userRepo.User
	checker availabilitySvc.Checker
	otel    otel.Otel
}

func New(repo repository.Table, users userRepo.User, checker availabilitySvc.Checker, otel otel.Otel) Table {
	return &serviceImpl{
		repo:    repo,
		users:   users,
		checker: checker,
		otel:    otel,
	}
}

var byNumber = gDto.QueryParams{
	SortBy:  model.TableName + "." + model.FieldNumber,
	SortDir: gDto.SortDirAsc,
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table := req.ToModel(sess.Login)

	if err = s.repo.Insert(ctx, table); err != nil {
		if failure.Is(err, failure.KindConflict) {
			return res, failure.Conflict(fmt.Sprintf("table number %d already exists", req.Number))
		}

		log.Error().Err(err).Int("number", req.Number).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	res.FromModel(table)

	return res, nil
}

// List projects every table's status at the requested instant.
func (s *serviceImpl) List(ctx context.Context, req dto.ListTablesRequest) (res dto.FloorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	at, err := instant(req)
	if err != nil {
		return res, err
	}

	tables, err := s.repo.GetAll(ctx, byNumber, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	project, err := s.checker.Snapshot(ctx, at)
	if err != nil {
		return res, fmt.Errorf("failed to project tables: %w", err)
	}

	res.FromModels(tables, project, at)

	return res, nil
}

// Available returns the tables large enough for the party that are free over the interval.
func (s *serviceImpl) Available(ctx context.Context, req dto.AvailableTablesRequest) (res dto.AvailableTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Available")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Guests <= 0 {
		return res, failure.BadRequestFromString("guests must be positive")
	}

	interval, err := availability.NewInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return res, err
	}

	tables, err := s.repo.GetAll(ctx, byNumber, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCapacity,
				Value:    req.Guests,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.Tables = []dto.TableResponse{}

	for _, table := range tables {
		free, err := s.checker.IsTableFree(ctx, table.ID, interval)
		if err != nil {
			return res, fmt.Errorf("failed to check table %d: %w", table.Number, err)
		}

		if !free {
			continue
		}

		var tableRes dto.TableResponse
		tableRes.FromModel(table)

		res.Tables = append(res.Tables, tableRes)
	}

	return res, nil
}

func (s *serviceImpl) AssignWaiter(ctx context.Context, sess session.Session, tableID string, req dto.AssignWaiterRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.AssignWaiter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	table, err := s.repo.Get(ctx, shared.FilterByID(tableID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("table", tableID).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found")
	}

	waiter, err := s.users.Get(ctx, shared.FilterByID(req.WaiterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("waiter", req.WaiterID).Msg("failed to get waiter")

		return res, fmt.Errorf("failed to get waiter: %w", err)
	}

	if waiter.ID == constant.Empty || waiter.Role != constant.RoleWaiter || !waiter.Active {
		return res, failure.BadRequestFromString("waiter_id must reference an active waiter")
	}

	if err = s.repo.AssignWaiter(ctx, table.ID, waiter.ID, sess.Login); err != nil {
		log.Error().Err(err).Str("table", tableID).Msg("failed to assign waiter")

		return res, fmt.Errorf("failed to assign waiter: %w", err)
	}

	table.WaiterID = &waiter.ID
	table.WaiterName = &waiter.FullName
	res.FromModel(table)

	return res, nil
}

func instant(req dto.ListTablesRequest) (time.Time, error) {
	now := timezone.Now()
	if req.Date == constant.Empty && req.Time == constant.Empty {
		return now, nil
	}

	day := timezone.StartOfDay(now)

	if req.Date != constant.Empty {
		parsed, err := timezone.Date(req.Date)
		if err != nil {
			return time.Time{}, failure.BadRequest(err)
		}

		day = parsed
	}

	clock := now.Format(constant.ClockFormat)
	if req.Time != constant.Empty {
		clock = req.Time
	}

	at, err := timezone.At(day, clock)
	if err != nil {
		return time.Time{}, failure.BadRequest(err)
	}

	return at, nil
}
