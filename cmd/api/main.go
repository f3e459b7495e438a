package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"todoList/internal/auth"
	"todoList/internal/config"
	"todoList/internal/handlers"
	"todoList/internal/logger"
	"todoList/internal/middleware"
	"todoList/internal/migrations"
	"todoList/internal/repository/inmemory"
	"todoList/internal/repository/postgres"
	"todoList/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env необязателен, секреты могут прийти из окружения напрямую
	_ = godotenv.Load()

	cfg, err := config.Load("config.yml")
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	defer logger.Sync()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET не задан")
	}

	tokens := auth.NewTokenManager(auth.Config{
		Secret:     secret,
		AccessTTL:  cfg.Auth.AccessTTL.Std(),
		RefreshTTL: cfg.Auth.RefreshTTL.Std(),
		Issuer:     cfg.Auth.Issuer,
	})
	hasher := auth.NewPasswordHasher()

	var (
		taskRepo service.TaskRepository
		userRepo service.UserRepository
	)

	switch cfg.Repository.Type {
	case "postgres":
		if err := migrations.Up(cfg.Database.URL); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		storage, err := postgres.New(ctx, cfg.Database)
		cancel()
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}
		defer storage.Close()

		taskRepo = storage
		userRepo = storage
	case "inmemory":
		taskRepo = inmemory.NewTaskStorage()
		userRepo = inmemory.NewUserStorage()
	default:
		return fmt.Errorf("неизвестный тип репозитория: %s", cfg.Repository.Type)
	}

	taskService := service.NewTaskService(taskRepo)
	authService := service.NewAuthService(userRepo, hasher, tokens)

	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)
	r.Post("/token", authHandler.ObtainPair)
	r.Post("/token/refresh", authHandler.RefreshToken)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Post("/", taskHandler.Create)           // POST /tasks
		r.Get("/", taskHandler.List)              // GET /tasks?status=
		r.Get("/retrieve", taskHandler.Retrieve)  // GET /tasks/retrieve?task_id=
		r.Put("/update", taskHandler.Update)      // PUT /tasks/update?task_id=
		r.Delete("/destroy", taskHandler.Destroy) // DELETE /tasks/destroy?task_id=
	})

	r.Get("/health", taskHandler.HealthCheck)

	addr := cfg.GetServerAddr()
	logger.Info("Server started", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
