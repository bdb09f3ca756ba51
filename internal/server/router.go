// internal/server/router.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"ponto-intake/internal/adjustments"
	"ponto-intake/internal/common/logger"
	"ponto-intake/internal/store"
)

// Notifier is the notification capability consumed by the submit route.
type Notifier interface {
	Notify(ctx context.Context, records []adjustments.Record, managerEmail, managerName string) error
}

// allowedMethods backs the Allow header on 405 responses.
var allowedMethods = map[string]string{
	"/api/registrar": http.MethodPost,
	"/api/download":  http.MethodGet,
	"/api/limpar":    http.MethodDelete,
}

// Server routes intake requests to the pipeline. Each route has exactly one
// failure boundary; errors are logged with full detail and reported with a
// sanitized message plus cause text.
type Server struct {
	store    store.Store
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func New(st store.Store, notifier Notifier, log logger.Logger, allowedOrigins []string) http.Handler {
	s := &Server{
		store:    st,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
		now:      time.Now,
	}
	return s.routes(allowedOrigins)
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		OptionsSuccessStatus: http.StatusOK,
	})
	r.Use(corsHandler.Handler)

	r.Post("/api/registrar", s.handleSubmit)
	r.Get("/api/download", s.handleDownload)
	r.Delete("/api/limpar", s.handleReset)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.respondJSON(w, http.StatusNotFound, apiResponse{
			Success: false,
			Message: "rota não encontrada: " + req.URL.Path,
		})
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if allow, ok := allowedMethods[req.URL.Path]; ok {
			w.Header().Set("Allow", allow)
		}
		s.respondJSON(w, http.StatusMethodNotAllowed, apiResponse{
			Success: false,
			Message: "método não permitido: " + req.Method,
		})
	})

	return r
}
