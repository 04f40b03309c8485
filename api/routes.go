package api

import (
	"fmt"
	"net/http"

	"github.com/garnizeh/jobboard/internal/applications"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/catalog"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, store repository.Store) (*mux.Router, error) {
	authManager, err := auth.NewManager(store, auth.Options{
		Secret:        cfg.JWTSecret,
		TokenDuration: cfg.TokenDuration,
		CookieName:    cfg.CookieName,
		CookieSecure:  cfg.CookieSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("auth manager: %w", err)
	}

	return NewRouter(authManager, store, cfg.CORSOrigin, version, buildTime), nil
}

// NewRouter wires the handlers for store behind the standard middleware chain.
func NewRouter(authManager *auth.Manager, store repository.Store, corsOrigin, version, buildTime string) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware(corsOrigin))
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := NewSystemHandler(store)
	userHandler := NewUserHandler(authManager)
	jobHandler := NewJobHandler(catalog.NewService(store))
	applicationHandler := NewApplicationHandler(applications.NewService(store))

	// preflight for every path; the CORS middleware answers it
	r.MatcherFunc(isPreflight).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/user/register", userHandler.Register).Methods("POST")
	apiV1.HandleFunc("/user/login", userHandler.Login).Methods("POST")

	// Protected routes
	protected := apiV1.NewRoute().Subrouter()
	protected.Use(SessionMiddleware(authManager, store))

	protected.HandleFunc("/user/logout", userHandler.Logout).Methods("GET")
	protected.HandleFunc("/user/getUser", userHandler.GetUser).Methods("GET")

	// fixed job paths are registered before /job/{id}
	protected.HandleFunc("/job/getall", jobHandler.GetAll).Methods("GET")
	protected.HandleFunc("/job/getmyjobs", jobHandler.GetMyJobs).Methods("GET")
	protected.HandleFunc("/job/post", jobHandler.Post).Methods("POST")
	protected.HandleFunc("/job/update/{id}", jobHandler.Update).Methods("PUT")
	protected.HandleFunc("/job/delete/{id}", jobHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/job/{id}", jobHandler.Get).Methods("GET")

	protected.HandleFunc("/application/post", applicationHandler.Post).Methods("POST")
	protected.HandleFunc("/application/jobseeker/getall", applicationHandler.JobSeekerGetAll).Methods("GET")
	protected.HandleFunc("/application/employer/getall", applicationHandler.EmployerGetAll).Methods("GET")
	protected.HandleFunc("/application/delete/{id}", applicationHandler.Delete).Methods("DELETE")

	return r
}

func isPreflight(r *http.Request, _ *mux.RouteMatch) bool {
	return r.Method == http.MethodOptions
}
