package menu

import (
	"bistro/infras/otel"
	"bistro/internal/domains/menu/model/dto"
	"bistro/internal/domains/menu/service"
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

const (
	queryParamCategoryID = "category_id"
	queryParamInStock    = "in_stock"
	queryParamName       = "name"
)

type Handler struct {
	service service.Menu
	otel    otel.Otel
}

func New(service service.Menu, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu", func(routerGroup chi.Router) {
		routerGroup.Get("/categories", handler.GetCategories)
		routerGroup.Post("/categories", handler.CreateCategory)

		routerGroup.Route("/dishes", func(dishes chi.Router) {
			dishes.Post("/", handler.CreateDish)
			dishes.Get("/", handler.GetDishes)
			dishes.Get("/{id}", handler.GetDishByID)
			dishes.Patch("/{id}", handler.UpdateDish)
			dishes.Delete("/{id}", handler.DeleteDish)
		})
	})
}

// CreateCategory adds a menu category.
// @Summary Create category
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateCategory(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create category")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCategories lists menu categories.
// @Summary Get categories
// @Tags Menu
// @Produce json
// @Success 200 {object} dto.GetCategoriesResponse
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories [get]
// @Security BearerAuth
func (handler *Handler) GetCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	res, err := handler.service.ListCategories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateDish adds a dish to the menu.
// @Summary Create dish
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateDishRequest true "Create Dish Request"
// @Success 201 {object} dto.DishResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/dishes [post]
// @Security BearerAuth
func (handler *Handler) CreateDish(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDish")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateDishRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateDish(ctx, sess, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create dish")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Dish created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDishes lists dishes.
// @Summary Get dishes
// @Tags Menu
// @Produce json
// @Param category_id query string false "Filter by category"
// @Param in_stock query boolean false "Only dishes with stock left"
// @Param name query string false "Filter by name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} dto.GetDishesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/dishes [get]
// @Security BearerAuth
func (handler *Handler) GetDishes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDishes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	req := dto.ListDishesRequest{
		CategoryID: query.Get(queryParamCategoryID),
		InStock:    shared.ConvertStringToBool(query.Get(queryParamInStock)),
		Name:       query.Get(queryParamName),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ListDishes(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dishes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetDishByID returns one dish.
// @Summary Get dish by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} dto.DishResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/dishes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDishByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDishByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetDish(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dish")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateDish changes dish fields, stock included.
// @Summary Update dish
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Dish ID"
// @Param request body dto.UpdateDishRequest true "Update Dish Request"
// @Success 200 {object} dto.DishResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/dishes/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDish(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDish")
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

	req := dto.UpdateDishRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateDish(ctx, sess, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update dish")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Dish updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteDish removes a dish no order line refers to.
// @Summary Delete dish
// @Tags Menu
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} response.Message "Dish deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/dishes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDish(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDish")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeleteDish(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete dish")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Dish deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Dish deleted successfully")
}
