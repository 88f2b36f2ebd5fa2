package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/M-RajaBabu/TalkToMe-sub001/handlers"
	"github.com/M-RajaBabu/TalkToMe-sub001/internal/config"
	"github.com/M-RajaBabu/TalkToMe-sub001/middleware"
	"github.com/M-RajaBabu/TalkToMe-sub001/repository"
	"github.com/M-RajaBabu/TalkToMe-sub001/services"

	_ "net/http/pprof"
)

var (
	cfg           *config.Config
	dbPool        *pgxpool.Pool
	streakService *services.StreakService
	chatService   *services.ChatService
	authService   *services.AuthService
)

func init() {
	if err := godotenv.Load(); err != nil {
		logrus.Println("No .env file found")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to parse database URL: ", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logrus.Fatal("Failed to create connection pool: ", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		logrus.Fatal("Failed to ping database: ", err)
	}

	logrus.Println("Successfully connected to Postgres")

	streakRepo := repository.NewStreakRepository(dbPool)
	messageRepo := repository.NewMessageRepository(dbPool)
	userRepo := repository.NewUserRepository(dbPool)

	streakService = services.NewStreakService(streakRepo, messageRepo)
	chatService = services.NewChatService(messageRepo)
	authService = services.NewAuthService(userRepo, chatService, streakService, cfg.JWTSecret, cfg.TokenExpiry)

	middleware.InitPrometheus()
	middleware.InitRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
}

func main() {
	defer func() {
		logrus.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService, streakService)
	streakHandler := handlers.NewStreakHandler(streakService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass, promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(cfg.PprofSecret, http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "talktome-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))

	protected.HandleFunc("/user", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user", authHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/chat/messages", chatHandler.SaveMessage).Methods("POST")
	protected.HandleFunc("/chat/messages", chatHandler.GetHistory).Methods("GET")

	protected.HandleFunc("/streak", streakHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/streak", streakHandler.UpdateStreak).Methods("POST")
	protected.HandleFunc("/streak", streakHandler.ClearStreak).Methods("DELETE")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(r),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Printf("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Error starting server: ", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	logrus.Println("Got signal: ", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Printf("Server shutdown error: %v", err)
	}

	logrus.Println("Server shutdown complete")
}
