package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"barberq/internal/config"
	"barberq/internal/database"
	"barberq/internal/middleware"
	"barberq/internal/modules/admin"
	"barberq/internal/modules/auth"
	"barberq/internal/modules/booking"
	"barberq/internal/modules/catalog"
	"barberq/internal/modules/queue"
	jwtsvc "barberq/internal/pkg/jwt"
	"barberq/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.Server.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	barberRepo := repository.NewBarberRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	stationRepo := repository.NewStationRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(barberRepo, serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(appointmentRepo, barberRepo, userRepo)
	bookingHandler := booking.NewHandler(bookingService)

	hub := queue.NewHub()
	queueService := queue.NewService(appointmentRepo, stationRepo, hub, cfg.Queue.PerCustomerMinutes)
	queueHandler := queue.NewHandler(queueService, hub, barberRepo)

	refresher := queue.NewRefresher(queueService, hub, cfg.Queue.RefreshInterval)
	refresher.Start()
	defer refresher.Stop()

	adminService := admin.NewService(userRepo, barberRepo, appointmentRepo)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		queueHandler.RegisterPublicRoutes(v1)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}

		// barber station controls
		station := v1.Group("/")
		station.Use(middleware.Auth(j), middleware.BarberOnly())
		{
			queueHandler.RegisterBarberRoutes(station)
		}

		// admin surface
		adm := v1.Group("/")
		adm.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adm)
		}
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
