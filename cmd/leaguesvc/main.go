package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/pokernight/league-services/configs"
	"github.com/pokernight/league-services/internal/broker"
	"github.com/pokernight/league-services/internal/leaguesvc/db"
	"github.com/pokernight/league-services/internal/leaguesvc/handlers"
	"github.com/pokernight/league-services/internal/leaguesvc/service"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "league"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	ctx := context.Background()

	// pg connection
	dbURL := os.Getenv("POSTGRES_URL")
	dbpool, err := db.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	if err := db.MigrateUp(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// optional NATS event publisher
	var events service.EventPublisher = service.NoopPublisher{}
	b, err := broker.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server, events disabled %v", err)
	}
	if b != nil {
		defer b.Close()
		events = b
		log.Printf("NATS connection established successfully")
	}

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	leagueStore := store.NewLeagueStore(dbpool)
	memberStore := store.NewMemberStore(dbpool)
	leagueService := service.NewLeagueService(leagueStore, memberStore)

	gameStore := store.NewGameStore(dbpool)
	gamePlayerStore := store.NewGamePlayerStore(dbpool)
	cashInStore := store.NewCashInStore(dbpool)
	gameService := service.NewGameService(gameStore, gamePlayerStore, cashInStore, leagueStore, memberStore, events)

	statsStore := store.NewStatsStore(dbpool)
	statsService := service.NewStatsService(statsStore)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(userService, leagueService, gameService, statsService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
