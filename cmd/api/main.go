//	@title			Bookfeel API
//	@version		1.0
//	@description	Backend for Bookfeel — short shareable reflections about books.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/bookfeel/service/internal/config"
	"github.com/bookfeel/service/internal/db"
	"github.com/bookfeel/service/internal/entry"
	"github.com/bookfeel/service/internal/ident"
	"github.com/bookfeel/service/internal/kv"
	"github.com/bookfeel/service/internal/logger"
	appMiddleware "github.com/bookfeel/service/internal/middleware"
	"github.com/bookfeel/service/internal/storage"
	"github.com/bookfeel/service/internal/upload"
	"github.com/bookfeel/service/internal/user"

	_ "github.com/bookfeel/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	// Key-value store: Postgres when DATABASE_URL is set, in-memory otherwise.
	var store kv.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()

		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
		log.Info().Msg("connected to postgres, migrations applied")
		store = kv.NewPostgres(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store")
		store = kv.NewMemory()
	}

	// Object storage is optional: without a bucket the upload endpoint
	// reports a configuration error and blob cleanup is skipped.
	var blobs storage.Storage
	if cfg.StorageBucket != "" {
		s, err := storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("object storage init failed")
		}
		blobs = s
	} else {
		log.Warn().Msg("STORAGE_BUCKET not set, uploads disabled")
	}

	// Wire dependencies: repository → service → handler
	ids := ident.New(store)

	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo, ids, log)
	userHandler := user.NewHandler(userSvc)

	entryRepo := entry.NewRepository(store)
	entrySvc := entry.NewService(entryRepo, userSvc, ids, blobs, log)
	entryHandler := entry.NewHandler(entrySvc)

	uploadSvc := upload.NewService(blobs)
	uploadHandler := upload.NewHandler(uploadSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Content-Type", "X-Edit-Key", "X-User-ID"},
		MaxAge:             300,
		OptionsPassthrough: true,
	}))
	r.Use(appMiddleware.Preflight)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Create)
		r.Get("/users/{id}", userHandler.Get)

		r.Post("/upload-url", uploadHandler.RequestUploadURL)

		r.Post("/entries/list", entryHandler.ListSummaries)
		r.Get("/feed", entryHandler.Feed)

		r.Post("/entry", entryHandler.Create)
		r.Route("/entry/{slug}", func(r chi.Router) {
			r.Get("/", entryHandler.Get)
			r.Put("/", entryHandler.Update)
			r.Delete("/", entryHandler.Delete)
			r.Post("/like", entryHandler.Like)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
