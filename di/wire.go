//go:build wireinject
// +build wireinject

package di

import (
	"coating/config"
	"coating/infras/jwt"
	"coating/infras/kafka"
	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/infras/redis"
	"coating/infras/s3"
	adminService "coating/internal/domains/admin/service"
	"coating/internal/domains/auth/revocation"
	authService "coating/internal/domains/auth/service"
	"coating/internal/domains/booking/code"
	bookingRepository "coating/internal/domains/booking/repository"
	bookingService "coating/internal/domains/booking/service"
	contactRepository "coating/internal/domains/contact/repository"
	contactService "coating/internal/domains/contact/service"
	dashboardService "coating/internal/domains/dashboard/service"
	profileRepository "coating/internal/domains/profile/repository"
	profileService "coating/internal/domains/profile/service"
	projectRepository "coating/internal/domains/project/repository"
	projectService "coating/internal/domains/project/service"
	"coating/internal/domains/submission"
	userRepository "coating/internal/domains/user/repository"
	adminHandler "coating/internal/handlers/admin"
	authHandler "coating/internal/handlers/auth"
	bookingHandler "coating/internal/handlers/booking"
	contactHandler "coating/internal/handlers/contact"
	dashboardHandler "coating/internal/handlers/dashboard"
	profileHandler "coating/internal/handlers/profile"
	projectHandler "coating/internal/handlers/project"
	submissionHandler "coating/internal/handlers/submission"
	"coating/permissions"
	"coating/shared/cache"
	"coating/shared/event"
	transport "coating/transport/http"
	"coating/transport/http/middleware"
	"coating/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	rateLimit,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
	submission.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	revocation.New,
	authService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	code.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var projectDomain = wire.NewSet(
	projectRepository.New,
	projectService.New,
)

var domains = wire.NewSet(
	authDomain,
	profileDomain,
	bookingDomain,
	contactDomain,
	projectDomain,
	dashboardService.New,
	adminService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	bookingHandler.New,
	contactHandler.New,
	submissionHandler.New,
	dashboardHandler.New,
	adminHandler.New,
	projectHandler.New,
	router.New,
)

func InitializeService() *transport.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		transport.New,
	)

	return &transport.HTTP{}
}
