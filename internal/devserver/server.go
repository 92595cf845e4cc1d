// Package devserver is an in-memory stand-in for the recipebook backend. It
// serves the same JSON endpoints the page controllers consume, so the CLI and
// the tests can run without the real application.
package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"recipebook-tracker/internal/logging"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
	csrfFieldName  = "csrfmiddlewaretoken"
)

// Options tunes the fake backend.
type Options struct {
	// CSRF enables token checks on unsafe requests.
	CSRF bool
	// AllowedOrigins for CORS; empty allows every origin.
	AllowedOrigins []string
}

// Server holds the routes and their store.
type Server struct {
	store *Store
	log   *zap.Logger
	opts  Options
}

// New builds a server over store.
func New(store *Store, log *zap.Logger, opts Options) *Server {
	return &Server{store: store, log: logging.OrNop(log), opts: opts}
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the full middleware chain: CORS, request logging, CSRF, routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Invalid request method"})
	})

	r.HandleFunc("/bmi/", s.page("BMI Calculator")).Methods("GET")
	r.HandleFunc("/ingredients/", s.page("Ingredient Book")).Methods("GET")
	r.HandleFunc("/progress/", s.page("Progress")).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if s.opts.CSRF {
		api.Use(csrfMiddleware)
	}
	api.HandleFunc("/weight-data/", s.getWeightData).Methods("GET")
	api.HandleFunc("/leaderboard/submit-bmi/", s.submitBMI).Methods("POST")
	api.HandleFunc("/ingredients/", s.getIngredients).Methods("GET")
	api.HandleFunc("/ingredients/add/", s.addIngredient).Methods("POST")
	api.HandleFunc("/ingredients/delete/", s.deleteIngredient).Methods("POST")

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: len(s.opts.AllowedOrigins) > 0,
	})

	return c.Handler(loggingMiddleware(s.log)(r))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
