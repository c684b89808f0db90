package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/capflow/backend/internal/allocation"
	"github.com/capflow/backend/internal/config"
	"github.com/capflow/backend/internal/handler"
	"github.com/capflow/backend/internal/rating"
	"github.com/capflow/backend/internal/repository"
	"github.com/capflow/backend/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	bankRepo := repository.NewBankRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	scale := rating.DefaultScale()
	engine := allocation.NewEngine(scale)
	bankService := service.NewBankService(bankRepo, scale)
	projectService := service.NewProjectService(projectRepo, bankRepo, scale)
	settingsService := service.NewSettingsService(settingsRepo)
	allocationService := service.NewAllocationService(bankRepo, projectRepo, settingsService, engine)
	dashboardService := service.NewDashboardService(bankRepo, projectRepo)

	// Initialize handlers
	bankHandler := handler.NewBankHandler(bankService)
	projectHandler := handler.NewProjectHandler(projectService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	allocationHandler := handler.NewAllocationHandler(allocationService)
	countryHandler := handler.NewCountryHandler()
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Dashboard
	r.Get("/api/dashboard", dashboardHandler.Get)

	// Banks
	r.Get("/api/banks", bankHandler.List)
	r.Post("/api/banks", bankHandler.Create)
	r.Get("/api/banks/{id}", bankHandler.Get)
	r.Put("/api/banks/{id}", bankHandler.Update)
	r.Delete("/api/banks/{id}", bankHandler.Delete)

	// Projects
	r.Get("/api/projects", projectHandler.List)
	r.Post("/api/projects", projectHandler.Create)
	r.Get("/api/projects/{id}", projectHandler.Get)
	r.Put("/api/projects/{id}", projectHandler.Update)
	r.Delete("/api/projects/{id}", projectHandler.Delete)
	r.Post("/api/projects/{id}/allocate", projectHandler.Allocate)
	r.Post("/api/projects/{id}/issue", projectHandler.Issue)
	r.Get("/api/projects/{id}/ranking", allocationHandler.Ranking)

	// Optimizer
	r.Post("/api/optimize", allocationHandler.Optimize)

	// Settings
	r.Get("/api/settings", settingsHandler.Get)
	r.Put("/api/settings", settingsHandler.Update)

	// Reference data
	r.Get("/api/countries", countryHandler.List)
	r.Get("/api/countries/regions", countryHandler.Regions)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
