package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"medinbox/internal/config"
	"medinbox/internal/metrics"
	"medinbox/internal/service"
)

// Services are the application services the router exposes.
type Services struct {
	Users         *service.UserService
	Conversations *service.ConversationService
	Messages      *service.MessageService
}

// NewRouter constructs the main HTTP router and wires routes, services, and middleware.
func NewRouter(cfg *config.Config, svc Services, m *metrics.Metrics, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", sessionHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": cfg.AppName, "version": "1.0.0"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	limiter := newLimiterPool(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(SessionMiddleware(svc.Users, cfg.SessionUserID))

		r.Get("/me", handleMe())
		r.With(RateLimit(limiter, log)).Patch("/me/status", handleSetStatus(svc.Users))

		// Users and reference data
		r.Route("/users", func(r chi.Router) {
			r.Get("/", handleListUsers(svc.Users))
			r.Get("/{userID}", handleGetUser(svc.Users))
		})
		r.Get("/teams", handleListTeams(svc.Conversations))
		r.Get("/patients/{patientID}", handleGetPatient(svc.Conversations))

		// Conversations and messages
		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", handleListConversations(svc.Conversations))
			r.Get("/stats", handleStats(svc.Conversations))
			r.Get("/{conversationID}", handleGetConversation(svc.Conversations))
			r.Get("/{conversationID}/messages", handleListMessages(svc.Conversations))

			r.Group(func(r chi.Router) {
				r.Use(RateLimit(limiter, log))

				r.Post("/", handleCreateConversation(svc.Conversations))
				r.Post("/{conversationID}/read", handleMarkConversationRead(svc.Conversations))
				r.Post("/{conversationID}/pin", handleTogglePin(svc.Conversations))
				r.Post("/{conversationID}/mute", handleToggleMute(svc.Conversations))
				r.Post("/{conversationID}/messages", handleCreateMessage(svc.Messages))
				r.Post("/{conversationID}/messages/inbound", handleReceiveMessage(svc.Messages))
				r.Patch("/{conversationID}/messages/{messageID}", handleEditMessage(svc.Messages))
				r.Post("/{conversationID}/messages/{messageID}/reactions", handleToggleReaction(svc.Messages))
			})
		})
	})

	return r
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
