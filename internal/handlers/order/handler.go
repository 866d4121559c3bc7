package order

import (
	"bistro/infras/otel"
	"bistro/internal/domains/order/model/dto"
	"bistro/internal/domains/order/service"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/session"
	"bistro/shared/validator"
	"bistro/transport/http/response"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamStatus   = "status"
	queryParamClientID = "client_id"
)

type Handler struct {
	service service.Order
	otel    otel.Otel
}

func New(service service.Order, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Route("/pending", func(pending chi.Router) {
			pending.Get("/", handler.GetPending)
			pending.Delete("/", handler.DiscardPending)
			pending.Post("/lines", handler.AddLine)
			pending.Delete("/lines/{dish_id}", handler.RemoveLine)
		})

		routerGroup.Post("/", handler.SaveOrder)
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Post("/{id}/items", handler.ExtendOrder)
		routerGroup.Post("/{id}/pay", handler.PayOrder)
		routerGroup.Post("/{id}/close", handler.CloseOrder)
		routerGroup.Post("/{id}/receipt", handler.PrintReceipt)
	})

	router.Get("/receipts", handler.GetReceipts)
}

// withSession runs fn for an authenticated caller and writes its result.
func (handler *Handler) withSession(writer http.ResponseWriter, request *http.Request, op string, status int, fn func(ctx context.Context, sess session.Session) (any, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := fn(ctx, sess)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("operation", op).Str("user", sess.Login).Msg("order request failed")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, status, res)
}

// orderID reads and validates the {id} path parameter.
func orderID(request *http.Request) (string, error) {
	id := chi.URLParam(request, constant.RequestParamID)

	return id, validator.ValidateVar(id, "required,uuid")
}

// GetPending returns the caller's unsaved order.
// @Summary Pending order
// @Tags Order
// @Produce json
// @Success 200 {object} dto.PendingResponse
// @Failure 500 {object} response.Error
// @Router /v1/orders/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPending(writer http.ResponseWriter, request *http.Request) {
	handler.withSession(writer, request, "GetPending", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.GetPending(ctx, sess)
	})
}

// DiscardPending drops the caller's unsaved order.
// @Summary Discard pending order
// @Tags Order
// @Produce json
// @Success 200 {object} response.Message "Pending order discarded"
// @Failure 500 {object} response.Error
// @Router /v1/orders/pending [delete]
// @Security BearerAuth
func (handler *Handler) DiscardPending(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DiscardPending")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Discard(ctx, sess); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to discard pending order")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Pending order discarded")
}

// AddLine puts a dish into the caller's pending order.
// @Summary Add pending line
// @Description Quantities for a dish already in the order accumulate. Stock is checked against the live menu.
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.AddLineRequest true "Add Line Request"
// @Success 200 {object} dto.PendingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/pending/lines [post]
// @Security BearerAuth
func (handler *Handler) AddLine(writer http.ResponseWriter, request *http.Request) {
	req := dto.AddLineRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "AddLine", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.AddLine(ctx, sess, req)
	})
}

// RemoveLine drops a dish from the caller's pending order.
// @Summary Remove pending line
// @Tags Order
// @Produce json
// @Param dish_id path string true "Dish ID"
// @Success 200 {object} dto.PendingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/pending/lines/{dish_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveLine(writer http.ResponseWriter, request *http.Request) {
	dishID := chi.URLParam(request, constant.RequestParamDishID)

	if err := validator.ValidateVar(dishID, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "RemoveLine", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.RemoveLine(ctx, sess, dishID)
	})
}

// SaveOrder commits the pending order to a table.
// @Summary Save order
// @Description Seats the pending order at the table, decrementing stock atomically.
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.SaveOrderRequest true "Save Order Request"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders [post]
// @Security BearerAuth
func (handler *Handler) SaveOrder(writer http.ResponseWriter, request *http.Request) {
	req := dto.SaveOrderRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "SaveOrder", http.StatusCreated, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Save(ctx, sess, req)
	})
}

// GetOrders lists orders visible to the caller.
// @Summary Get orders
// @Tags Order
// @Produce json
// @Param status query string false "Filter by status" Enums(active, paid, closed)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} dto.GetOrdersResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(writer http.ResponseWriter, request *http.Request) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	req := dto.ListOrdersRequest{Status: request.URL.Query().Get(queryParamStatus)}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "GetOrders", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.List(ctx, sess, queryParams, req)
	})
}

// GetOrderByID returns an order with its lines.
// @Summary Get order by ID
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(writer http.ResponseWriter, request *http.Request) {
	id, err := orderID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "GetOrderByID", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Get(ctx, sess, id)
	})
}

// ExtendOrder adds the pending lines to an active order.
// @Summary Extend order
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id}/items [post]
// @Security BearerAuth
func (handler *Handler) ExtendOrder(writer http.ResponseWriter, request *http.Request) {
	id, err := orderID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "ExtendOrder", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Extend(ctx, sess, id)
	})
}

// PayOrder marks an active order paid.
// @Summary Pay order
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id}/pay [post]
// @Security BearerAuth
func (handler *Handler) PayOrder(writer http.ResponseWriter, request *http.Request) {
	id, err := orderID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "PayOrder", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Pay(ctx, sess, id)
	})
}

// CloseOrder closes a paid order, or an active one when confirmed.
// @Summary Close order
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.CloseOrderRequest false "Close Order Request"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id}/close [post]
// @Security BearerAuth
func (handler *Handler) CloseOrder(writer http.ResponseWriter, request *http.Request) {
	id, err := orderID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CloseOrderRequest{}

	if request.ContentLength != 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	handler.withSession(writer, request, "CloseOrder", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Close(ctx, sess, id, req.Confirm)
	})
}

// PrintReceipt issues the receipt for an order, reusing the archived copy on reprint.
// @Summary Print receipt
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/{id}/receipt [post]
// @Security BearerAuth
func (handler *Handler) PrintReceipt(writer http.ResponseWriter, request *http.Request) {
	id, err := orderID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "PrintReceipt", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Receipt(ctx, sess, id)
	})
}

// GetReceipts lists a client's order history.
// @Summary Receipt history
// @Description Clients always see their own history.
// @Tags Order
// @Produce json
// @Param client_id query string false "Client ID (staff only)"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetOrdersResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/receipts [get]
// @Security BearerAuth
func (handler *Handler) GetReceipts(writer http.ResponseWriter, request *http.Request) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	req := dto.ReceiptsRequest{
		ClientID: query.Get(queryParamClientID),
		From:     query.Get(constant.RequestParamFrom),
		To:       query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.withSession(writer, request, "GetReceipts", http.StatusOK, func(ctx context.Context, sess session.Session) (any, error) {
		return handler.service.Receipts(ctx, sess, queryParams, req)
	})
}
