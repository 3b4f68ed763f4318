package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/devfolio/portfolio-backend/auth"
	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/database"
)

type Server struct {
	*http.Server
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	if config.GetString(c, "JWT_SECRET", "") == "" {
		return Server{}, fmt.Errorf("JWT_SECRET must be configured")
	}

	port := config.GetString(c, "PORT", "5000")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	router := NewHandler(database, c)

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server}, nil
}

// NewHandler builds the full route tree over the given database. Split out
// from NewServer so tests and the in-process client can drive the router
// without a listening socket.
func NewHandler(database database.Database, c map[string]string) *chi.Mux {
	developmentMode = config.IsDevelopment(c)

	secret := []byte(config.GetString(c, "JWT_SECRET", ""))
	tokenTTL := auth.DefaultTokenTTL
	if hours := config.GetInt(c, "TOKEN_TTL_HOURS", 0); hours > 0 {
		tokenTTL = time.Duration(hours) * time.Hour
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RecoverPanics)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	allowedOrigins := strings.Split(config.GetString(c, "CORS_ORIGIN", "http://localhost:3000"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := initializeHandlers(database, c, secret, tokenTTL)
	authMiddleware := newAuthMiddleware(secret)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
