package router

import (
	"bistro/internal/handlers/auth"
	"bistro/internal/handlers/menu"
	"bistro/internal/handlers/order"
	"bistro/internal/handlers/reservation"
	"bistro/internal/handlers/shift"
	"bistro/internal/handlers/statistics"
	"bistro/internal/handlers/table"
	"bistro/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Table       table.Handler
	Reservation reservation.Handler
	Menu        menu.Handler
	Order       order.Handler
	Shift       shift.Handler
	Statistics  statistics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Shift.Router(routerGroup)
		r.DomainHandlers.Statistics.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
