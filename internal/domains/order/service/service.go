package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Order=MockOrderService

import (
	"bistro/config"
	"bistro/infras/otel"
	"bistro/infras/s3"
	availabilitySvc "bistro/internal/domains/availability/service"
	menuModel "bistro/internal/domains/menu/model"
	menuRepo "bistro/internal/domains/menu/repository"
	"bistro/internal/domains/order/model"
	"bistro/internal/domains/order/model/dto"
	"bistro/internal/domains/order/repository"
	shiftRepo "bistro/internal/domains/shift/repository"
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
	gRepo "bistro/shared/repository"
	"bistro/shared/session"
	"bistro/shared/timezone"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	operationSave   = "save"
	operationExtend = "extend"
)

var sortableColumns = map[string]string{
	model.FieldCreatedAt: model.TableName + "." + model.FieldCreatedAt,
	model.FieldTotal:     model.TableName + "." + model.FieldTotal,
	model.FieldStatus:    model.TableName + "." + model.FieldStatus,
}

type Order interface {
	AddLine(ctx context.Context, sess session.Session, req dto.AddLineRequest) (dto.PendingResponse, error)
	RemoveLine(ctx context.Context, sess session.Session, dishID string) (dto.PendingResponse, error)
	GetPending(ctx context.Context, sess session.Session) (dto.PendingResponse, error)
	Discard(ctx context.Context, sess session.Session) error
	Save(ctx context.Context, sess session.Session, req dto.SaveOrderRequest) (dto.OrderResponse, error)
	Extend(ctx context.Context, sess session.Session, id string) (dto.OrderResponse, error)
	Pay(ctx context.Context, sess session.Session, id string) (dto.OrderResponse, error)
	Close(ctx context.Context, sess session.Session, id string, confirm bool) (dto.OrderResponse, error)
	Get(ctx context.Context, sess session.Session, id string) (dto.OrderResponse, error)
	List(ctx context.Context, sess session.Session, params gDto.QueryParams, req dto.ListOrdersRequest) (dto.GetOrdersResponse, error)
	Receipt(ctx context.Context, sess session.Session, id string) (dto.ReceiptResponse, error)
	Receipts(ctx context.Context, sess session.Session, params gDto.QueryParams, req dto.ReceiptsRequest) (dto.GetOrdersResponse, error)
}

type serviceImpl struct {
	orders    repository.Order
	items     repository.Item
	pending   repository.PendingStore
	dishes    menuRepo.Dish
	tables    tableRepo.Table
	shifts    shiftRepo.Shift
	users     userRepo.User
	checker   availabilitySvc.Checker
	tx        gRepo.Transactor
	storage   s3.S3
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

type Deps struct {
	Orders    repository.Order
	Items     repository.Item
	Pending   repository.PendingStore
	Dishes    menuRepo.Dish
	Tables    tableRepo.Table
	Shifts    shiftRepo.Shift
	Users     userRepo.User
	Checker   availabilitySvc.Checker
	Tx        gRepo.Transactor
	Storage   s3.S3
	Publisher event.Publisher
}

func New(deps Deps, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Order {
	return &serviceImpl{
		orders:    deps.Orders,
		items:     deps.Items,
		pending:   deps.Pending,
		dishes:    deps.Dishes,
		tables:    deps.Tables,
		shifts:    deps.Shifts,
		users:     deps.Users,
		checker:   deps.Checker,
		tx:        deps.Tx,
		storage:   deps.Storage,
		publisher: deps.Publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Save(ctx context.Context, sess session.Session, req dto.SaveOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() {
		metrics.OrdersCommitted.WithLabelValues(operationSave, metrics.Outcome(err)).Inc()
	}()

	pending, err := s.loadPending(ctx, sess)
	if err != nil {
		return res, err
	}

	if err = s.requireOpenShift(ctx, sess); err != nil {
		return res, err
	}

	clientID, err := s.resolveClient(ctx, sess, req.ClientID)
	if err != nil {
		return res, err
	}

	waiterID, err := s.resolveWaiter(ctx, sess, req.TableID)
	if err != nil {
		return res, err
	}

	order := req.ToModel(clientID, waiterID, sess.Login)
	items := dto.ToItems(order.ID, pending)

	seatedClient := constant.Empty
	if clientID != nil {
		seatedClient = *clientID
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		found, err := s.tables.LockTx(ctx, sqltx, order.TableID)
		if err != nil {
			return fmt.Errorf("failed to lock table: %w", err)
		}

		if !found {
			return failure.NotFound("table not found")
		}

		if err := s.checker.CanSeatNow(ctx, sqltx, order.TableID, seatedClient, timezone.Now()); err != nil {
			return err
		}

		if err := s.orders.InsertTx(ctx, sqltx, order); err != nil {
			if failure.Is(err, failure.KindConflict) {
				return failure.Conflict("table already has an active order")
			}

			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := s.items.InsertBulkTx(ctx, sqltx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := s.decrementStock(ctx, sqltx, pending, sess.Login); err != nil {
			return err
		}

		order.Total, err = s.orders.RecomputeTotalTx(ctx, sqltx, order.ID, sess.Login)
		if err != nil {
			return fmt.Errorf("failed to compute order total: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("table", req.TableID).Msg("failed to save order")

		return res, fmt.Errorf("failed to save order: %w", err)
	}

	s.afterCommit(ctx, sess)

	s.publisher.Publish(ctx, event.New(event.OrderCreated, order.ID, sess.Login, map[string]any{
		"table_id":  order.TableID,
		"waiter_id": order.WaiterID,
		"client_id": order.ClientID,
		"total":     order.Total,
		"lines":     len(items),
	}))

	return s.respond(ctx, order.ID)
}

func (s *serviceImpl) Extend(ctx context.Context, sess session.Session, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Extend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() {
		metrics.OrdersCommitted.WithLabelValues(operationExtend, metrics.Outcome(err)).Inc()
	}()

	pending, err := s.loadPending(ctx, sess)
	if err != nil {
		return res, err
	}

	if err = s.requireOpenShift(ctx, sess); err != nil {
		return res, err
	}

	order, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	if err = model.Extend(order.Status); err != nil {
		return res, err
	}

	var total int64

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		status, err := s.orders.LockTx(ctx, sqltx, order.ID)
		if err != nil {
			return fmt.Errorf("failed to lock order: %w", err)
		}

		if status == constant.Empty {
			return failure.NotFound("order not found")
		}

		if err := model.Extend(status); err != nil {
			return err
		}

		for _, item := range dto.ToItems(order.ID, pending) {
			merged, err := s.items.MergeTx(ctx, sqltx, item)
			if err != nil {
				return fmt.Errorf("failed to merge order item: %w", err)
			}

			if merged {
				continue
			}

			if err := s.items.InsertTx(ctx, sqltx, item); err != nil {
				return fmt.Errorf("failed to add order item: %w", err)
			}
		}

		if err := s.decrementStock(ctx, sqltx, pending, sess.Login); err != nil {
			return err
		}

		total, err = s.orders.RecomputeTotalTx(ctx, sqltx, order.ID, sess.Login)
		if err != nil {
			return fmt.Errorf("failed to compute order total: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("failed to extend order")

		return res, fmt.Errorf("failed to extend order: %w", err)
	}

	s.afterCommit(ctx, sess)

	s.publisher.Publish(ctx, event.New(event.OrderExtended, order.ID, sess.Login, map[string]any{
		"total": total,
		"lines": len(pending.Lines),
	}))

	return s.respond(ctx, order.ID)
}

func (s *serviceImpl) Pay(ctx context.Context, sess session.Session, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	if err = model.Pay(order.Status); err != nil {
		return res, err
	}

	if err = s.transition(ctx, sess, order, model.StatusPaid); err != nil {
		return res, err
	}

	s.publisher.Publish(ctx, event.New(event.OrderPaid, order.ID, sess.Login, map[string]any{
		"waiter_id": order.WaiterID,
		"total":     order.Total,
	}))

	order.Status = model.StatusPaid
	res.FromModel(order, nil)

	return res, nil
}

func (s *serviceImpl) Close(ctx context.Context, sess session.Session, id string, confirm bool) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	if err = model.Close(order.Status, confirm); err != nil {
		return res, err
	}

	if err = s.transition(ctx, sess, order, model.StatusClosed); err != nil {
		return res, err
	}

	s.publisher.Publish(ctx, event.New(event.OrderClosed, order.ID, sess.Login, map[string]any{
		"from":  order.Status,
		"total": order.Total,
	}))

	order.Status = model.StatusClosed
	res.FromModel(order, nil)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, sess session.Session, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.get(ctx, sess, id)
	if err != nil {
		return res, err
	}

	items, err := s.itemsOf(ctx, order.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(order, items[order.ID])

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, sess session.Session, params gDto.QueryParams, req dto.ListOrdersRequest) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := scopeFilter(sess)

	if req.Status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    req.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	params = shared.RestrictSort(params, sortableColumns, model.TableName+"."+model.FieldCreatedAt, gDto.SortDirDesc)

	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.orders.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(orders, nil, total, params.Limit)

	return res, nil
}

// transition applies a status change guarded by the status the order was read in.
func (s *serviceImpl) transition(ctx context.Context, sess session.Session, order model.Order, to string) error {
	changed, err := s.orders.Transition(ctx, order.ID, order.Status, to, sess.Login)
	if err != nil {
		log.Error().Err(err).Str("order", order.ID).Str("to", to).Msg("failed to change order status")

		return fmt.Errorf("failed to change order status: %w", err)
	}

	if !changed {
		return failure.InvalidState(fmt.Sprintf("order is no longer %s", order.Status))
	}

	metrics.OrderTransitions.WithLabelValues(to).Inc()

	return nil
}

func (s *serviceImpl) decrementStock(ctx context.Context, sqltx *sqlx.Tx, pending model.Pending, actor string) error {
	for _, line := range pending.Lines {
		ok, err := s.dishes.DecrementStockTx(ctx, sqltx, line.DishID, line.Quantity, actor)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		if !ok {
			metrics.StockRejections.Inc()

			return failure.InsufficientStock(fmt.Sprintf("not enough %s in stock", line.Name))
		}
	}

	return nil
}

// afterCommit drops the saved pending order and the stale dish listings.
func (s *serviceImpl) afterCommit(ctx context.Context, sess session.Session) {
	if err := s.pending.Delete(ctx, sess.UserID); err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to discard saved pending order")
	}

	shared.InvalidateCaches(ctx, s.cache, menuModel.CacheDishList)
}

func (s *serviceImpl) loadPending(ctx context.Context, sess session.Session) (model.Pending, error) {
	pending, err := s.pending.Get(ctx, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user", sess.UserID).Msg("failed to load pending order")

		return pending, fmt.Errorf("failed to load pending order: %w", err)
	}

	if pending.Empty() {
		return pending, failure.BadRequestFromString("pending order is empty")
	}

	return pending, nil
}

func (s *serviceImpl) requireOpenShift(ctx context.Context, sess session.Session) error {
	if !sess.IsWaiter() {
		return nil
	}

	open, err := s.shifts.Exist(ctx, shiftRepo.OpenFilter(sess.UserID))
	if err != nil {
		log.Error().Err(err).Str("waiter", sess.UserID).Msg("failed to check open shift")

		return fmt.Errorf("failed to check open shift: %w", err)
	}

	if !open {
		return failure.InvalidState("start a shift before taking orders")
	}

	return nil
}

// resolveClient returns the client the order is placed for, if any. Clients order for
// themselves; staff may name a client.
func (s *serviceImpl) resolveClient(ctx context.Context, sess session.Session, clientID string) (*string, error) {
	if sess.IsClient() {
		return &sess.UserID, nil
	}

	if clientID == constant.Empty {
		return nil, nil
	}

	client, err := s.users.Get(ctx, shared.FilterByID(clientID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("client", clientID).Msg("failed to get client")

		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == constant.Empty || client.Role != constant.RoleClient {
		return nil, failure.BadRequestFromString("client_id must reference a client")
	}

	return &client.ID, nil
}

// resolveWaiter picks who serves the order: staff serve their own orders, a client's order
// goes to the waiter assigned to the table.
func (s *serviceImpl) resolveWaiter(ctx context.Context, sess session.Session, tableID string) (string, error) {
	if sess.IsStaff() {
		return sess.UserID, nil
	}

	waiterID, err := s.tables.WaiterOf(ctx, tableID)
	if err != nil {
		log.Error().Err(err).Str("table", tableID).Msg("failed to get table waiter")

		return constant.Empty, fmt.Errorf("failed to get table waiter: %w", err)
	}

	if waiterID == constant.Empty {
		return constant.Empty, failure.NotFound("no waiter is assigned to the table")
	}

	return waiterID, nil
}

// get loads an order the session may see. Waiters reach the orders they serve and clients
// their own.
func (s *serviceImpl) get(ctx context.Context, sess session.Session, id string) (model.Order, error) {
	order, err := s.orders.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("failed to get order")

		return order, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return order, failure.NotFound("order not found")
	}

	switch {
	case sess.IsClient() && !order.OwnedBy(sess.UserID):
		return order, failure.Forbidden("order belongs to another client")
	case sess.IsWaiter() && order.WaiterID != sess.UserID:
		return order, failure.Forbidden("order is served by another waiter")
	}

	return order, nil
}

func (s *serviceImpl) respond(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	order, err := s.orders.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("order", id).Msg("failed to reload order")

		return res, fmt.Errorf("failed to reload order: %w", err)
	}

	items, err := s.itemsOf(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(order, items[id])

	return res, nil
}

// itemsOf loads the lines of the given orders keyed by order id.
func (s *serviceImpl) itemsOf(ctx context.Context, orderIDs ...string) (map[string][]model.Item, error) {
	grouped := map[string][]model.Item{}
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOrderID,
				Value:    orderIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.ItemTableName,
			},
		},
	}

	items, err := s.items.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return grouped, fmt.Errorf("failed to get order items: %w", err)
	}

	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}

	return grouped, nil
}

// scopeFilter narrows order listings to what the session may see.
func scopeFilter(sess session.Session) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	switch {
	case sess.IsClient():
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldClientID,
			Value:    sess.UserID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	case sess.IsWaiter():
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldWaiterID,
			Value:    sess.UserID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}
