//go:build wireinject
// +build wireinject

package di

import (
	"bistro/config"
	"bistro/infras/jwt"
	"bistro/infras/kafka"
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/infras/redis"
	"bistro/infras/s3"
	"bistro/permissions"
	"bistro/shared/cache"
	"bistro/shared/event"
	gRepo "bistro/shared/repository"
	"bistro/transport/http"
	"bistro/transport/http/middleware"
	"bistro/transport/http/router"

	"github.com/google/wire"

	authService "bistro/internal/domains/auth/service"
	availabilityRepository "bistro/internal/domains/availability/repository"
	availabilityService "bistro/internal/domains/availability/service"
	menuRepository "bistro/internal/domains/menu/repository"
	menuService "bistro/internal/domains/menu/service"
	orderRepository "bistro/internal/domains/order/repository"
	orderService "bistro/internal/domains/order/service"
	reservationRepository "bistro/internal/domains/reservation/repository"
	reservationService "bistro/internal/domains/reservation/service"
	shiftRepository "bistro/internal/domains/shift/repository"
	shiftService "bistro/internal/domains/shift/service"
	statisticsRepository "bistro/internal/domains/statistics/repository"
	statisticsService "bistro/internal/domains/statistics/service"
	tableRepository "bistro/internal/domains/table/repository"
	tableService "bistro/internal/domains/table/service"
	userRepository "bistro/internal/domains/user/repository"
	userService "bistro/internal/domains/user/service"

	authHandler "bistro/internal/handlers/auth"
	menuHandler "bistro/internal/handlers/menu"
	orderHandler "bistro/internal/handlers/order"
	reservationHandler "bistro/internal/handlers/reservation"
	shiftHandler "bistro/internal/handlers/shift"
	statisticsHandler "bistro/internal/handlers/statistics"
	tableHandler "bistro/internal/handlers/table"
	userHandler "bistro/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
	gRepo.NewTransactor,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var tableDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.NewCategory,
	menuRepository.NewDish,
	menuService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.NewOrder,
	orderRepository.NewItem,
	orderRepository.NewPendingStore,
	wire.Struct(new(orderService.Deps), "*"),
	orderService.New,
)

var shiftDomain = wire.NewSet(
	shiftRepository.New,
	shiftService.New,
)

var statisticsDomain = wire.NewSet(
	statisticsRepository.New,
	statisticsService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	tableDomain,
	reservationDomain,
	menuDomain,
	orderDomain,
	shiftDomain,
	statisticsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	tableHandler.New,
	reservationHandler.New,
	menuHandler.New,
	orderHandler.New,
	shiftHandler.New,
	statisticsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
