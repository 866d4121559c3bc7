package shift

import (
	"bistro/infras/otel"
	"bistro/internal/domains/shift/model/dto"
	"bistro/internal/domains/shift/service"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	"bistro/shared/session"
	"bistro/shared/validator"
	"bistro/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryParamWaiterID = "waiter_id"

type Handler struct {
	service service.Shift
	otel    otel.Otel
}

func New(service service.Shift, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/shifts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetShifts)
		routerGroup.Post("/start", handler.StartShift)
		routerGroup.Get("/current", handler.GetCurrentShift)
		routerGroup.Post("/{id}/close", handler.CloseShift)
	})
}

// StartShift opens a shift for the calling waiter.
// @Summary Start shift
// @Tags Shift
// @Produce json
// @Success 201 {object} dto.ShiftResponse
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/start [post]
// @Security BearerAuth
func (handler *Handler) StartShift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartShift")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Start(ctx, sess)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start shift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Shift started by " + sess.Login)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CloseShift ends the waiter's shift and settles tips from the orders it paid.
// @Summary Close shift
// @Tags Shift
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} dto.CloseShiftResponse
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/{id}/close [post]
// @Security BearerAuth
func (handler *Handler) CloseShift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseShift")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Close(ctx, sess, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close shift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Shift closed by " + sess.Login)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetCurrentShift returns the calling waiter's open shift.
// @Summary Current shift
// @Tags Shift
// @Produce json
// @Success 200 {object} dto.ShiftResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts/current [get]
// @Security BearerAuth
func (handler *Handler) GetCurrentShift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentShift")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Current(ctx, sess)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current shift")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetShifts lists shifts started in a month.
// @Summary Get shifts
// @Tags Shift
// @Produce json
// @Param waiter_id query string false "Filter by waiter"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetShiftsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/shifts [get]
// @Security BearerAuth
func (handler *Handler) GetShifts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShifts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	req := dto.ListShiftsRequest{
		WaiterID: query.Get(queryParamWaiterID),
		Month:    shared.ConvertStringToInt(query.Get(constant.RequestParamMonth)),
		Year:     shared.ConvertStringToInt(query.Get(constant.RequestParamYear)),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.List(ctx, req, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shifts")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
