package handler

import (
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Hackathons     *service.HackathonService
	Feedback       *service.FeedbackService
	Resolver       identity.Resolver
	Logger         zerolog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the API router with the global middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	hackathons := NewHackathonHandler(cfg.Hackathons)
	feedback := NewFeedbackHandler(cfg.Feedback)
	authenticate := Authenticate(cfg.Resolver)
	optionalAuth := OptionalAuth(cfg.Resolver)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(cfg.Logger))      // structured access log
	r.Use(CORS(cfg.AllowedOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	// Health
	r.Get("/health", HealthCheck)

	r.Route("/hackathons", func(r chi.Router) {
		r.With(optionalAuth).Get("/", hackathons.ListHackathons)
		r.With(optionalAuth).Get("/{id}", hackathons.GetHackathon)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/mine", hackathons.ListMine)
			r.With(RequireCapability(identity.CapCreateHackathon)).Post("/", hackathons.CreateHackathon)
			r.Put("/{id}", hackathons.UpdateHackathon)
			r.Delete("/{id}", hackathons.DeleteHackathon)
			r.With(RequireCapability(identity.CapModerateHackathons)).Post("/{id}/approve", hackathons.ApproveHackathon)
			r.Post("/{id}/cancel", hackathons.CancelHackathon)
			r.Get("/{id}/teams", hackathons.ListTeams)
			r.Delete("/{id}/teams/{teamId}", hackathons.DeleteTeam)

			r.Group(func(r chi.Router) {
				r.Use(RequireCapability(identity.CapRegister))
				r.Post("/{id}/register", hackathons.Register)
				r.Post("/{id}/unregister", hackathons.Unregister)
				r.Post("/{id}/register-team", hackathons.RegisterTeam)
			})
		})
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Post("/", feedback.Submit)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, RequireCapability(identity.CapManageFeedback))
			r.Get("/", feedback.List)
			r.Patch("/{id}", feedback.Update)
			r.Delete("/{id}", feedback.Delete)
		})
	})

	return r
}
