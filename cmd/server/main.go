package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inmobiliaria_api/internal/api"
	"inmobiliaria_api/internal/api/handler"
	"inmobiliaria_api/internal/app/service"
	"inmobiliaria_api/internal/common/security"
	"inmobiliaria_api/internal/domain/repository"
	"inmobiliaria_api/internal/platform/cache"
	"inmobiliaria_api/internal/platform/config"
	"inmobiliaria_api/internal/platform/database"
	"inmobiliaria_api/internal/platform/logging"
	"inmobiliaria_api/internal/platform/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Configuration and logging
	config.Load()
	logging.Setup(config.AppConfig.Environment)
	log.Info().Str("env", config.AppConfig.Environment).Msg("Configuration loaded")

	// 2. JWT signing
	security.InitJWT()

	// 3. Storage: Postgres by default, flat file for small deployments
	var (
		propertyRepo repository.PropertyRepository
		userRepo     repository.UserRepository
		contactRepo  repository.ContactRepository
		healthChecks []handler.HealthCheck
		err          error
	)

	switch config.AppConfig.StorageDriver {
	case config.DriverFile:
		propertyRepo, err = repository.NewFilePropertyRepository(config.AppConfig.DataFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open property file store")
		}
		userRepo, err = repository.NewStaticUserRepository(
			config.AppConfig.AdminUsername,
			config.AppConfig.AdminEmail,
			config.AppConfig.AdminPassword,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not build admin credential store")
		}
		contactRepo = repository.NewLogContactRepository()
	default:
		database.Connect()
		defer database.Close()
		propertyRepo = repository.NewPgPropertyRepository(database.DB)
		userRepo = repository.NewPgUserRepository(database.DB)
		contactRepo = repository.NewPgContactRepository(database.DB)
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name:  "database",
			Probe: database.DB.PingContext,
		})
	}

	// 4. Listing cache (Redis, optional)
	listingCache := cache.NewNoopListingCache()
	if config.AppConfig.RedisAddr != "" {
		cache.ConnectRedis()
		defer cache.CloseRedis()
		listingCache = cache.NewRedisListingCache(cache.RDB, config.AppConfig.CacheTTL)
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name: "redis",
			Probe: func(ctx context.Context) error {
				return cache.RDB.Ping(ctx).Err()
			},
		})
	}

	// 5. Upload directory
	images, err := storage.NewImageStore(config.AppConfig.UploadDir, config.AppConfig.MaxUploadBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not prepare upload directory")
	}

	// 6. Services
	authService := service.NewAuthService(userRepo)
	propertyService := service.NewPropertyService(propertyRepo, listingCache)
	contactService := service.NewContactService(contactRepo)

	// 7. Bootstrap data (admin account, sample listings)
	if config.AppConfig.StorageDriver == config.DriverPostgres {
		seedService := service.NewSeedService(authService, userRepo, propertyService, config.AppConfig)
		seedService.Run(context.Background())
	}

	// 8. Router & HTTP server
	router := api.NewRouter(authService, propertyService, contactService, images, healthChecks, config.AppConfig)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", config.AppConfig.APIPort).Msg("Could not listen")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
