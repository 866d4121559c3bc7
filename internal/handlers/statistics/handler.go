package statistics

import (
	"bistro/infras/otel"
	"bistro/internal/domains/statistics/model/dto"
	"bistro/internal/domains/statistics/service"
	"bistro/shared"
	"bistro/shared/constant"
	"bistro/shared/validator"
	"bistro/transport/http/response"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Statistics
	otel    otel.Otel
}

func New(service service.Statistics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/statistics", func(routerGroup chi.Router) {
		routerGroup.Get("/sales", handler.GetSales)
		routerGroup.Get("/reservations", handler.GetReservations)
		routerGroup.Get("/waiters", handler.GetWaiters)
		routerGroup.Get("/sessions", handler.GetSessions)
	})
}

func monthRequest(request *http.Request) (dto.MonthRequest, error) {
	query := request.URL.Query()
	req := dto.MonthRequest{
		Month: shared.ConvertStringToInt(query.Get(constant.RequestParamMonth)),
		Year:  shared.ConvertStringToInt(query.Get(constant.RequestParamYear)),
	}

	return req, validator.ValidateStruct(&req)
}

func (handler *Handler) monthReport(writer http.ResponseWriter, request *http.Request, op string, fn func(ctx context.Context, req dto.MonthRequest) (any, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	req, err := monthRequest(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := fn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("report", op).Msg("failed to build report")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSales reports quantity and revenue per category and dish.
// @Summary Sales report
// @Tags Statistics
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.SalesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/statistics/sales [get]
// @Security BearerAuth
func (handler *Handler) GetSales(writer http.ResponseWriter, request *http.Request) {
	handler.monthReport(writer, request, "GetSales", func(ctx context.Context, req dto.MonthRequest) (any, error) {
		return handler.service.Sales(ctx, req)
	})
}

// GetReservations reports active reservations per table.
// @Summary Reservations report
// @Tags Statistics
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.ReservationsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/statistics/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	handler.monthReport(writer, request, "GetReservations", func(ctx context.Context, req dto.MonthRequest) (any, error) {
		return handler.service.Reservations(ctx, req)
	})
}

// GetWaiters reports orders, payments and tips per waiter.
// @Summary Waiters report
// @Tags Statistics
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.WaitersResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/statistics/waiters [get]
// @Security BearerAuth
func (handler *Handler) GetWaiters(writer http.ResponseWriter, request *http.Request) {
	handler.monthReport(writer, request, "GetWaiters", func(ctx context.Context, req dto.MonthRequest) (any, error) {
		return handler.service.Waiters(ctx, req)
	})
}

// GetSessions lists reservation sessions between two dates.
// @Summary Sessions report
// @Tags Statistics
// @Produce json
// @Param from query string true "From date (YYYY-MM-DD)"
// @Param to query string true "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.SessionsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/statistics/sessions [get]
// @Security BearerAuth
func (handler *Handler) GetSessions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessions")
	defer scope.End()

	query := request.URL.Query()
	req := dto.PeriodRequest{
		From: query.Get(constant.RequestParamFrom),
		To:   query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Sessions(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build sessions report")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
