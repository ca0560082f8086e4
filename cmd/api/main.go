package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vertical/backend/internal/access"
	"vertical/backend/internal/composite"
	"vertical/backend/internal/config"
	"vertical/backend/internal/db"
	"vertical/backend/internal/http/handlers"
	"vertical/backend/internal/http/middleware"
	"vertical/backend/internal/integrations"
	"vertical/backend/internal/logging"
	"vertical/backend/internal/registration"
	"vertical/backend/internal/repository"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("log error: %v", err)
	}
	defer func() {
		_ = cleanup()
	}()
	logger = logger.With("service", "api")
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db error", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := repository.New(pool)
	cards := composite.NewService(repo)
	reg := registration.NewService(repo, cards, access.ParseRoleSource(cfg.RoleSource))

	var s3Client *integrations.S3Client
	if cfg.S3.Bucket != "" {
		s3Client, err = integrations.NewS3(ctx, cfg.S3)
		if err != nil {
			logger.Error("s3 error", "error", err)
			os.Exit(1)
		}
	}

	h := handlers.New(repo, cards, reg, s3Client, cfg, logger)
	limiter := middleware.NewClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/vdriver/v1", func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(repo, logger))

		r.Get("/events", h.ListEvents)
		r.Get("/event", h.GetEvent)
		r.Get("/event-tickets", h.ListEventTickets)
		r.Get("/event-bookings", h.ListEventBookings)
		r.Get("/eventlocation", h.GetEventLocation)

		r.Get("/post", h.GetPost)
		r.Get("/postmeta", h.GetPostMeta)

		r.Get("/event-card/by-id", h.EventCardByID)
		r.Get("/event-card/query", h.EventCardQuery)
		r.Get("/full-event", h.FullEvent)

		r.Get("/user", h.GetUser)
		r.Get("/usermeta", h.GetUserMeta)
		r.Get("/user-profile/by-id", h.UserProfileByID)
		r.Get("/user-profile/by-email", h.UserProfileByEmail)
		r.Get("/user-profile/picture", h.UserProfilePicture)

		r.Get("/comments", h.ListComments)
		r.Get("/roles", h.ListRoles)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))

			r.Post("/em/register", h.Register)
			r.Post("/em/unregister", h.Unregister)

			r.Post("/events/comment", h.CreateComment)
			r.Post("/events/comment/update", h.UpdateComment)
			r.Post("/events/comment/delete", h.DeleteComment)
			r.Post("/events/comment/delete-all-by-user", h.DeleteUserComments)
			r.Post("/events/comment/delete-all", h.DeleteAllComments)

			r.Post("/admin/api-key", h.RotateAPIKey)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		logger.Info("api_listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutdown", "service", "api")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-Api-Key,Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
