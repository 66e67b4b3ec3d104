package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FitPulse/config"
	"FitPulse/core/auth"
	"FitPulse/core/blog"
	"FitPulse/core/mealplan"
	"FitPulse/core/news"
	"FitPulse/db"
	"FitPulse/logger"
	"FitPulse/model"
	"FitPulse/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	log.Println("Successfully connected to Redis")

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.AutoMigrateModels(&model.History{}); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	historyRepo := repository.NewGormHistoryRepository(db.GormDB)
	sessions := auth.NewRedisSessionStore(db.RedisClient)
	newsClient := news.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.UpstreamTimeout)
	mealPlanClient := mealplan.NewClient(cfg.FoodAPIURL, cfg.FoodAPIKey, cfg.FoodAPIHash, cfg.UpstreamTimeout)
	publisher := blog.NewRedisPublisher(db.RedisClient)

	apiHandler := NewAPIHandler(userRepo, historyRepo, sessions, newsClient, mealPlanClient, publisher, cfg)

	// The hub forwards blog channel events to websocket subscribers.
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	hub := blog.NewHub()
	go hub.Run(hubCtx, db.RedisClient, blog.Channel)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Auth endpoints
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", apiHandler.AuthMiddleware(apiHandler.LogoutHandler)).Methods(http.MethodPost)

	// Profile endpoints
	router.HandleFunc("/api/profile", apiHandler.AuthMiddleware(apiHandler.ProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/profile/update", apiHandler.AuthMiddleware(apiHandler.UpdateProfileHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/about", apiHandler.AuthMiddleware(apiHandler.AboutHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/planner", apiHandler.AuthMiddleware(apiHandler.PlannerHandler)).Methods(http.MethodGet)

	// News feed
	router.HandleFunc("/api/news", apiHandler.AuthMiddleware(apiHandler.NewsHandler)).Methods(http.MethodGet)

	// Blog endpoints
	router.HandleFunc("/api/posts", apiHandler.AuthMiddleware(apiHandler.CreatePostHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}", apiHandler.AuthMiddleware(apiHandler.UpdatePostHandler)).Methods(http.MethodPut, http.MethodDelete)
	router.HandleFunc("/api/personal", apiHandler.AuthMiddleware(apiHandler.HistoryHandler)).Methods(http.MethodGet)

	// Websocket subscribers for blog events
	router.HandleFunc("/ws/blog", hub.ServeWS)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on :%s...", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
