package user

import (
	"bistro/infras/otel"
	"bistro/internal/domains/user/model/dto"
	"bistro/internal/domains/user/service"
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

const queryParamRole = "role"

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// serve traces op and writes fn's result with status, or its error.
func (handler *Handler) serve(writer http.ResponseWriter, request *http.Request, op string, status int, fn func(ctx context.Context) (any, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	res, err := fn(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("operation", op).Msg("user request failed")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, status, res)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/{id}", handler.GetUserByID)
	})
}

// CreateUser handles the creation of a staff or client account.
// @Summary Create a new user
// @Description Create an account with the given role.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(writer http.ResponseWriter, request *http.Request) {
	handler.serve(writer, request, "CreateUser", http.StatusCreated, func(ctx context.Context) (any, error) {
		sess, err := session.Require(ctx)
		if err != nil {
			return nil, err
		}

		var req dto.CreateUserRequest
		if err := validator.Validate(request.Body, &req); err != nil {
			return nil, err
		}

		return handler.service.Create(ctx, sess, req)
	})
}

// GetUsers lists accounts, optionally narrowed to one role.
// @Summary Get users
// @Tags User
// @Produce json
// @Param role query string false "Filter by role" Enums(admin, waiter, client)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} dto.GetUsersResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(writer http.ResponseWriter, request *http.Request) {
	handler.serve(writer, request, "GetUsers", http.StatusOK, func(ctx context.Context) (any, error) {
		var params gDto.QueryParams
		params.FromRequest(request, true)

		role := request.URL.Query().Get(queryParamRole)
		if err := validator.ValidateVar(role, "omitempty,oneof=admin waiter client"); err != nil {
			return nil, err
		}

		return handler.service.GetAll(ctx, params, role)
	})
}

// GetUserByID returns a single account.
// @Summary Get user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(writer http.ResponseWriter, request *http.Request) {
	handler.serve(writer, request, "GetUserByID", http.StatusOK, func(ctx context.Context) (any, error) {
		id := chi.URLParam(request, constant.RequestParamID)
		if err := validator.ValidateVar(id, "required,uuid"); err != nil {
			return nil, err
		}

		return handler.service.Get(ctx, id)
	})
}
