package table

import (
	"bistro/infras/otel"
	"bistro/internal/domains/table/model/dto"
	"bistro/internal/domains/table/service"
	"bistro/shared"
	"bistro/shared/constant"
	"bistro/shared/session"
	"bistro/shared/validator"
	"bistro/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamDate      = "date"
	queryParamTime      = "time"
	queryParamStartTime = "start_time"
	queryParamEndTime   = "end_time"
	queryParamGuests    = "guests"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetFloor)
		routerGroup.Get("/available", handler.GetAvailable)
		routerGroup.Put("/{id}/waiter", handler.AssignWaiter)
	})
}

// CreateTable adds a table to the floor.
// @Summary Create a table
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} dto.TableResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateTableRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Table created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetFloor lists every table with its status at the given moment, now by default.
// @Summary Floor plan
// @Tags Table
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param time query string false "Time (HH:MM)"
// @Success 200 {object} dto.FloorResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
// @Security BearerAuth
func (handler *Handler) GetFloor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFloor")
	defer scope.End()

	query := request.URL.Query()
	req := dto.ListTablesRequest{
		Date: query.Get(queryParamDate),
		Time: query.Get(queryParamTime),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailable lists tables free for a whole interval that seat the party.
// @Summary Available tables
// @Tags Table
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Param guests query int true "Party size"
// @Success 200 {object} dto.AvailableTablesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/available [get]
// @Security BearerAuth
func (handler *Handler) GetAvailable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailable")
	defer scope.End()

	query := request.URL.Query()
	req := dto.AvailableTablesRequest{
		Date:      query.Get(queryParamDate),
		StartTime: query.Get(queryParamStartTime),
		EndTime:   query.Get(queryParamEndTime),
		Guests:    shared.ConvertStringToInt(query.Get(queryParamGuests)),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Available(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find available tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AssignWaiter makes a waiter responsible for the table.
// @Summary Assign waiter
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.AssignWaiterRequest true "Assign Waiter Request"
// @Success 200 {object} dto.TableResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id}/waiter [put]
// @Security BearerAuth
func (handler *Handler) AssignWaiter(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignWaiter")
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

	req := dto.AssignWaiterRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AssignWaiter(ctx, sess, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign waiter")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Waiter assigned to table " + id)

	response.WithJSON(writer, http.StatusOK, res)
}
