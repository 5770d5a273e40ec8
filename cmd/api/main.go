// @title                       Hotel API
// @version                     1.0
// @description                 Bookings, payments, room catalog and back office for the hotel site.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotelhub/hotel-api/internal/api"
	"github.com/hotelhub/hotel-api/internal/api/handler"
	"github.com/hotelhub/hotel-api/internal/core/service"
	mongodb "github.com/hotelhub/hotel-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hotelhub/hotel-api/internal/infrastructure/db/redis"
	"github.com/hotelhub/hotel-api/internal/infrastructure/queue"
	"github.com/hotelhub/hotel-api/internal/infrastructure/seed"
	"github.com/hotelhub/hotel-api/internal/pkg/config"
	"github.com/hotelhub/hotel-api/internal/pkg/token"
	"github.com/hotelhub/hotel-api/pkg/logger"

	_ "github.com/hotelhub/hotel-api/docs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "hotel-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Repositories ---
	userRepo := mongodb.NewAuthRepository(db)
	roomRepo := mongodb.NewRoomRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	if cfg.Booking.SeedRooms {
		if err := seed.LoadRooms(ctx, roomRepo, logger.Component("seed")); err != nil {
			log.Fatal().Err(err).Msg("failed to seed rooms")
		}
	}

	// --- Audit pipeline ---
	eventService := service.NewEventService(eventRepo, redisdb.NewDedupChecker(rdb), logger.Component("events"))
	dispatcher := queue.NewDispatcher(cfg.Booking.EventWorkers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo)
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	sessionService := service.NewSessionService(authService, redisdb.NewSessionStore(rdb), issuer, logger.Component("sessions"))
	bookingService := service.NewBookingService(bookingRepo, roomRepo, userRepo, dispatcher, logger.Component("bookings"))
	roomService := service.NewRoomService(roomRepo, logger.Component("rooms"))
	paymentService := service.NewPaymentService(bookingRepo, redisdb.NewLocker(rdb), cfg.Booking.PaymentDelay, logger.Component("payments"))

	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Sessions: sessionService,
		Bookings: bookingService,
		Rooms:    roomService,
		Payments: paymentService,
		Health: map[string]handler.Pinger{
			"mongo": handler.MongoPinger(db),
			"redis": handler.RedisPinger(rdb),
		},
		AccessTTL:     cfg.Auth.AccessTTL,
		SecureCookies: cfg.Auth.CookieSecure,
		Logger:        logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("hotel api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
