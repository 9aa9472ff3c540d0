package router

import (
	"coating/internal/handlers/admin"
	"coating/internal/handlers/auth"
	"coating/internal/handlers/booking"
	"coating/internal/handlers/contact"
	"coating/internal/handlers/dashboard"
	"coating/internal/handlers/profile"
	"coating/internal/handlers/project"
	"coating/internal/handlers/submission"
	"coating/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	Profile    profile.Handler
	Booking    booking.Handler
	Contact    contact.Handler
	Submission submission.Handler
	Dashboard  dashboard.Handler
	Admin      admin.Handler
	Project    project.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the versioned API. Every /v1 route passes the API key, auth and RBAC
// middleware, in that order.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Submission.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.Project.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
