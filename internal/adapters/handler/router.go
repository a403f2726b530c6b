package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/matchmyvibe/roommate-service/internal/adapters/middleware"
)

type Handlers struct {
	Account *AccountHandler
	Match   *MatchHandler
	Trait   *TraitHandler
	Health  *HealthHandler
	Auth    *middleware.AuthMiddleware
	Metrics http.Handler
}

// NewRouter wires every route and wraps the router with CORS.
func NewRouter(h Handlers, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	// Health endpoints (OpenShift compatible)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health/live", h.Health.Live).Methods(http.MethodGet)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}

	r.HandleFunc("/signup", h.Account.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Account.Login).Methods(http.MethodPost)
	r.HandleFunc("/receive_traits", h.Trait.ReceiveTraits).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(h.Auth.Authenticate)
	authed.HandleFunc("/logout", h.Account.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", h.Account.Me).Methods(http.MethodGet)
	authed.HandleFunc("/me/preferences", h.Account.UpdatePreferences).Methods(http.MethodPut)
	authed.HandleFunc("/ranked-matches", h.Match.RankedMatches).Methods(http.MethodGet)
	authed.HandleFunc("/swipe", h.Match.Swipe).Methods(http.MethodPost)

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", webhookSecretHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(r)
}
