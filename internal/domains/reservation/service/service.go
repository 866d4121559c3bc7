package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"bistro/config"
	"bistro/infras/otel"
	availability "bistro/internal/domains/availability/model"
	availabilitySvc "bistro/internal/domains/availability/service"
	"bistro/internal/domains/reservation/model"
	"bistro/internal/domains/reservation/model/dto"
	"bistro/internal/domains/reservation/repository"
	tableModel "bistro/internal/domains/table/model"
	tableRepo "bistro/internal/domains/table/repository"
	userModel "bistro/internal/domains/user/model"
	userRepo "bistro/internal/domains/user/repository"
	"bistro/shared"
	"bistro/shared/cache"
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

const (
	cacheGetAllReservation = "reservation:gets"
)

var sortableColumns = map[string]string{
	model.FieldReservationDate: model.TableName + "." + model.FieldReservationDate,
	model.FieldStartTime:       model.TableName + "." + model.FieldStartTime,
	model.FieldGuests:          model.TableName + "." + model.FieldGuests,
}

type Reservation interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	List(ctx context.Context, params gDto.QueryParams, req dto.ListReservationsRequest) (dto.GetReservationsResponse, error)
	ListMine(ctx context.Context, sess session.Session, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, sess session.Session, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, sess session.Session, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	tables    tableRepo.Table
	users     userRepo.User
	checker   availabilitySvc.Checker
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	tables tableRepo.Table,
	users userRepo.User,
	checker availabilitySvc.Checker,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		tables:    tables,
		users:     users,
		checker:   checker,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, sess session.Session, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() {
		metrics.ReservationsCreated.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	if req.Guests <= 0 {
		return res, failure.BadRequestFromString("guests must be positive")
	}

	interval, err := availability.NewInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return res, err
	}

	client, err := s.resolveClient(ctx, sess, req.ClientID)
	if err != nil {
		return res, err
	}

	table, err := s.tables.Get(ctx, shared.FilterByID(req.TableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("table", req.TableID).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found")
	}

	if req.Guests > table.Capacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("table %d seats at most %d guests", table.Number, table.Capacity))
	}

	free, err := s.checker.IsTableFree(ctx, table.ID, interval)
	if err != nil {
		return res, fmt.Errorf("failed to check table availability: %w", err)
	}

	if !free {
		return res, failure.Conflict(fmt.Sprintf("table %d is not free for the requested time", table.Number))
	}

	reservation := req.ToModel(client.ID, sess.Login, interval)

	if err = s.repo.Insert(ctx, reservation); err != nil {
		// the exclusion constraint catches a booking committed since the check
		if failure.Is(err, failure.KindConflict) {
			return res, failure.Conflict(fmt.Sprintf("table %d is not free for the requested time", table.Number))
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)

	reservation.TableNumber = table.Number
	reservation.ClientName = client.FullName

	s.publisher.Publish(ctx, event.New(event.ReservationCreated, reservation.ID, sess.Login, map[string]any{
		"table_id":  reservation.TableID,
		"client_id": reservation.ClientID,
		"start":     reservation.StartTime,
		"end":       reservation.EndTime,
		"guests":    reservation.Guests,
	}))

	res.FromModel(reservation)

	return res, nil
}

// resolveClient returns the account the reservation is booked for. Clients always book for
// themselves; staff may name a client and otherwise book under their own account.
func (s *serviceImpl) resolveClient(ctx context.Context, sess session.Session, clientID string) (userModel.User, error) {
	if sess.IsClient() || clientID == constant.Empty || clientID == sess.UserID {
		return userModel.User{ID: sess.UserID, FullName: sess.Name}, nil
	}

	client, err := s.users.Get(ctx, shared.FilterByID(clientID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("client", clientID).Msg("failed to get client")

		return client, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == constant.Empty || client.Role != constant.RoleClient {
		return client, failure.BadRequestFromString("client_id must reference a client")
	}

	return client, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, req dto.ListReservationsRequest) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := listFilter(req)
	if err != nil {
		return res, err
	}

	params = shared.RestrictSort(params, sortableColumns, model.TableName+"."+model.FieldStartTime, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save reservations to cache")
	}

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, sess session.Session, params gDto.QueryParams) (dto.GetReservationsResponse, error) {
	return s.List(ctx, params, dto.ListReservationsRequest{ClientID: sess.UserID})
}

func (s *serviceImpl) Get(ctx context.Context, sess session.Session, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, sess session.Session, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	if !reservation.Active() {
		return res, failure.InvalidState("reservation is already cancelled")
	}

	cancelled, err := s.repo.Cancel(ctx, reservation.ID, sess.Login)
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to cancel reservation")

		return res, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if !cancelled {
		return res, failure.InvalidState("reservation is already cancelled")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)

	s.publisher.Publish(ctx, event.New(event.ReservationCancelled, reservation.ID, sess.Login, map[string]any{
		"table_id":  reservation.TableID,
		"client_id": reservation.ClientID,
	}))

	reservation.Status = model.StatusCancelled
	res.FromModel(reservation)

	return res, nil
}

// get loads a reservation the session may see. Clients only reach their own.
func (s *serviceImpl) get(ctx context.Context, sess session.Session, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found")
	}

	if sess.IsClient() && reservation.ClientID != sess.UserID {
		return reservation, failure.Forbidden("reservation belongs to another client")
	}

	return reservation, nil
}

func listFilter(req dto.ListReservationsRequest) (gDto.FilterGroup, error) {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	equals := map[string]string{
		model.FieldTableID:  req.TableID,
		model.FieldClientID: req.ClientID,
		model.FieldStatus:   req.Status,
	}

	for _, field := range []string{model.FieldTableID, model.FieldClientID, model.FieldStatus} {
		if equals[field] == constant.Empty {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    field,
			Value:    equals[field],
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if req.Date != constant.Empty {
		date, err := timezone.Date(req.Date)
		if err != nil {
			return filter, failure.BadRequest(err)
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldReservationDate,
			Value:    date.Format(constant.DateOnlyFormat),
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter, nil
}
