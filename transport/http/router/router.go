package router

import (
	"github.com/go-chi/chi/v5"

	"stayhub/internal/handlers/auth"
	"stayhub/internal/handlers/booking"
	"stayhub/internal/handlers/listing"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Listing listing.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Listing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
