package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jamie33k/EmergencySystemFinal-draft/config"
	authrepo "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/repository"
	authservice "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/service"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/token"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/bootstrap"
	emrepo "github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/repository"
	emservice "github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/service"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/escalation"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/geocode"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores: PostgreSQL when a DSN is configured, in-memory otherwise.
	var (
		db        *pgxpool.Pool
		userStore authrepo.UserStore
		reqStore  emrepo.RequestStore
	)
	if cfg.Store.DSN != "" {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Store.DSN})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()

		pgUsers := authrepo.NewPostgresUserStore(db)
		pgRequests := emrepo.NewPostgresRequestStore(db)
		if err := pgUsers.Migrate(ctx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if err := pgRequests.Migrate(ctx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		userStore, reqStore = pgUsers, pgRequests
		log.Println("Using PostgreSQL stores")
	} else {
		userStore = authrepo.NewMemoryUserStore()
		reqStore = emrepo.NewMemoryRequestStore()
		log.Println("Using in-memory stores (demo mode)")
	}

	// Event bus: Redis pub/sub when configured, in-process otherwise.
	var bus events.Bus
	if cfg.Events.RedisAddr != "" {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Events.RedisAddr,
			Password: cfg.Events.RedisPassword,
		})
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()

		bus = events.NewRedisBus(rdb)
		log.Println("Using Redis event bus")
	} else {
		bus = events.NewMemoryBus()
		log.Println("Using in-process event bus")
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := authservice.NewAuthService(userStore, tokens)
	dispatch := emservice.NewDispatchService(reqStore, userStore, bus)
	geocoder := geocode.NewClient(cfg.App.GeocodeURL)

	if cfg.Store.SeedDemo {
		bootstrap.SeedDemoUsers(ctx, auth)
	}

	scheduler := escalation.NewScheduler(dispatch, cfg.App.EscalateAfter)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "huduma-emergency-connect",
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		Auth:        auth,
		Dispatch:    dispatch,
		Tokens:      tokens,
		Bus:         bus,
		Geocoder:    geocoder,
		DB:          db,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
