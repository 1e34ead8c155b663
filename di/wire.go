//go:build wireinject
// +build wireinject

package di

import (
	"studio/config"
	"studio/infras/jwt"
	"studio/infras/kafka"
	"studio/infras/mailer"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/infras/redis"
	"studio/infras/sms"
	"studio/infras/storage"
	"studio/internal/domains/notification/worker"
	"studio/shared/cache"
	"studio/transport/http"
	"studio/transport/http/middleware"
	"studio/transport/http/router"

	adminRepository "studio/internal/domains/admin/repository"
	adminService "studio/internal/domains/admin/service"
	bookingRepository "studio/internal/domains/booking/repository"
	bookingService "studio/internal/domains/booking/service"
	galleryRepository "studio/internal/domains/gallery/repository"
	galleryService "studio/internal/domains/gallery/service"
	inquiryRepository "studio/internal/domains/inquiry/repository"
	inquiryService "studio/internal/domains/inquiry/service"
	mediaService "studio/internal/domains/media/service"
	notificationService "studio/internal/domains/notification/service"
	offeringRepository "studio/internal/domains/offering/repository"
	offeringService "studio/internal/domains/offering/service"
	reviewRepository "studio/internal/domains/review/repository"
	reviewService "studio/internal/domains/review/service"
	statsService "studio/internal/domains/stats/service"
	videoRepository "studio/internal/domains/video/repository"
	videoService "studio/internal/domains/video/service"

	adminHandler "studio/internal/handlers/admin"
	bookingHandler "studio/internal/handlers/booking"
	galleryHandler "studio/internal/handlers/gallery"
	inquiryHandler "studio/internal/handlers/inquiry"
	offeringHandler "studio/internal/handlers/offering"
	reviewHandler "studio/internal/handlers/review"
	statsHandler "studio/internal/handlers/stats"
	uploadHandler "studio/internal/handlers/upload"
	videoHandler "studio/internal/handlers/video"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	storage.New,
	mailer.New,
	sms.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationService.NewDeliverer,
	notificationService.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
	mediaService.NewSweeper,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var catalogDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
	reviewRepository.New,
	reviewService.New,
	offeringRepository.New,
	offeringService.New,
	videoRepository.New,
	videoService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	mediaDomain,
	adminDomain,
	bookingDomain,
	inquiryDomain,
	catalogDomain,
	statsService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	adminHandler.New,
	bookingHandler.New,
	galleryHandler.New,
	inquiryHandler.New,
	offeringHandler.New,
	reviewHandler.New,
	statsHandler.New,
	uploadHandler.New,
	videoHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeWorker() (*worker.Worker, error) {
	wire.Build(
		configurations,
		otel.New,
		kafka.New,
		mailer.New,
		sms.New,
		notificationService.NewDeliverer,
		worker.New,
	)

	return &worker.Worker{}, nil
}
