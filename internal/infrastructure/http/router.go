package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/7Spade/tortoise/internal/domain"
	"github.com/7Spade/tortoise/internal/infrastructure/http/handlers"
	"github.com/7Spade/tortoise/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	HealthHandler        *handlers.HealthHandler
	UsersHandler         *handlers.UsersHandler
	WorkspacesHandler    *handlers.WorkspacesHandler
	OrganizationsHandler *handlers.OrganizationsHandler
	MembershipsHandler   *handlers.MembershipsHandler
	RequireJWT           func(http.Handler) http.Handler // JWT auth for everything past /auth
	OrgRateLimit         func(http.Handler) http.Handler // per-organization limit on org-scoped routes
	Log                  zerolog.Logger
	Secure               func(http.Handler) http.Handler
	IPRateLimit          func(http.Handler) http.Handler
	AllowedOrigins       []string // CORS; empty disables cross-origin access
	Metrics              bool     // expose /metrics
}

// apiVersion is advertised on every response via X-API-Version.
const apiVersion = "v1"

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	r.Use(middleware.APIVersion(apiVersion))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		// Exchanging a user token for an org-scoped one requires a user token.
		if cfg.RequireJWT != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireJWT)
				r.Post("/assume-organization", cfg.AuthHandler.AssumeOrg)
			})
		}
	})

	if cfg.UsersHandler != nil && cfg.RequireJWT != nil {
		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/", cfg.UsersHandler.List)
			r.Get("/me", cfg.UsersHandler.Me)
			r.Patch("/me", cfg.UsersHandler.UpdateMe)
			r.Get("/bots", cfg.UsersHandler.ListBots)
			r.Post("/bots", cfg.UsersHandler.CreateBot)
		})
	}

	if cfg.WorkspacesHandler != nil && cfg.RequireJWT != nil {
		r.Route("/workspaces", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			if cfg.OrgRateLimit != nil {
				r.Use(cfg.OrgRateLimit)
			}
			r.Post("/", cfg.WorkspacesHandler.Create)
			r.Get("/", cfg.WorkspacesHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.WorkspacesHandler.Get)
				r.Post("/archive", cfg.WorkspacesHandler.Archive)
				r.Post("/activate", cfg.WorkspacesHandler.Activate)
				r.Delete("/", cfg.WorkspacesHandler.Delete)
				r.Get("/modules", cfg.WorkspacesHandler.ListModules)
				r.Post("/modules", cfg.WorkspacesHandler.AddModule)
				r.Delete("/modules/{moduleID}", cfg.WorkspacesHandler.RemoveModule)
			})
		})
	}

	if cfg.OrganizationsHandler != nil && cfg.RequireJWT != nil {
		r.Route("/organizations", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			if cfg.OrgRateLimit != nil {
				r.Use(cfg.OrgRateLimit)
			}
			r.Post("/", cfg.OrganizationsHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.OrganizationsHandler.Get)
				// Roster changes need at least admin on the org token.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOrgRole(domain.RoleAdmin))
					r.Post("/members", cfg.OrganizationsHandler.AddMember)
					r.Post("/teams", cfg.OrganizationsHandler.AddTeam)
					r.Post("/teams/{teamID}/members", cfg.OrganizationsHandler.AddTeamMember)
					r.Post("/partners", cfg.OrganizationsHandler.AddPartner)
					r.Post("/partners/{partnerID}/members", cfg.OrganizationsHandler.AddPartnerMember)
				})
				if cfg.MembershipsHandler != nil {
					r.Get("/memberships", cfg.MembershipsHandler.List)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOrgRole(domain.RoleAdmin))
						r.Post("/memberships", cfg.MembershipsHandler.Create)
					})
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOrgRole(domain.RoleOwner))
						r.Post("/transfer-ownership", cfg.MembershipsHandler.TransferOwnership)
					})
				}
			})
		})
	}

	if cfg.MembershipsHandler != nil && cfg.RequireJWT != nil {
		r.Route("/memberships/{membershipID}", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Use(middleware.RequireOrgRole(domain.RoleAdmin))
			r.Post("/activate", cfg.MembershipsHandler.Activate)
			r.Post("/suspend", cfg.MembershipsHandler.Suspend)
			r.Post("/role", cfg.MembershipsHandler.ChangeRole)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
