package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/enoozackie/online-hotelreservation-sub001/internal/app"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/clock"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/config"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/storage/postgres"
	"github.com/enoozackie/online-hotelreservation-sub001/internal/storage/redis"
	transporthttp "github.com/enoozackie/online-hotelreservation-sub001/internal/transport/http"
	"github.com/enoozackie/online-hotelreservation-sub001/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	applied, err := migrations.Apply(startupCtx, pool)
	if err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	if len(applied) > 0 {
		logger.Printf("migrations applied=%s", strings.Join(applied, ","))
	}

	clk := clock.NewSystem(cfg.Location)
	roomOpts := []app.RoomServiceOption{
		app.WithRoomLogger(logger),
		app.WithRoomImageBase(cfg.ImageBaseURL),
	}

	if cfg.RedisAddr != "" {
		client, err := redis.Connect(startupCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Printf("WARN: redis unavailable addr=%s err=%v, stats cache disabled", cfg.RedisAddr, err)
		} else {
			defer func() { _ = client.Close() }()
			cache := redis.NewStatsCache(client, redis.WithStatsTTL(cfg.StatsCacheTTL))
			roomOpts = append(roomOpts, app.WithStatsCache(cache))
		}
	} else {
		logger.Printf("WARN: REDIS_ADDR not set, stats cache disabled")
	}

	roomSvc := app.NewRoomService(postgres.NewRoomRepository(pool), clk, roomOpts...)
	availSvc := app.NewAvailabilityService(
		postgres.NewAvailabilityRepository(pool),
		app.WithAvailabilityLogger(logger),
		app.WithDefaultPolicy(cfg.AvailabilityPolicy),
		app.WithAvailabilityImageBase(cfg.ImageBaseURL),
	)

	mux := http.NewServeMux()
	mux.Handle("/health", transporthttp.HandleHealth(pool))
	mux.Handle("/rooms", transporthttp.HandleRooms(roomSvc))
	mux.Handle("/rooms/", transporthttp.HandleRoom(roomSvc))
	mux.Handle("/availability", transporthttp.HandleAvailability(availSvc, clk))
	mux.Handle("/admin/rooms/stats", transporthttp.HandleRoomStats(roomSvc))
	mux.Handle("/admin/rooms/export", transporthttp.HandleRoomExport(roomSvc, logger))
	mux.Handle("/", transporthttp.NotFoundHandler(
		"/health",
		"/rooms",
		"/rooms/exists",
		"/rooms/{id}",
		"/rooms/{id}/status",
		"/availability",
		"/admin/rooms/stats",
		"/admin/rooms/export",
	))

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)
	handler = transporthttp.RequestContext(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("api listening on :%s policy=%s", cfg.Port, cfg.AvailabilityPolicy)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
