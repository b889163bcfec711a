package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/rsvp/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// UseCases bundles the use cases served over HTTP
type UseCases struct {
	rsvp   usecase.RSVPUseCase
	manage usecase.ManageUseCase
}

// NewUseCases creates a UseCases bundle
func NewUseCases(rsvp usecase.RSVPUseCase, manage usecase.ManageUseCase) *UseCases {
	return &UseCases{rsvp: rsvp, manage: manage}
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, uc *UseCases) (*Server, error) {
	if uc == nil || uc.rsvp == nil || uc.manage == nil {
		return nil, goerr.New("use cases are required")
	}

	router := chi.NewRouter()
	h := &handler{rsvp: uc.rsvp, manage: uc.manage}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Get("/groups", h.searchGroups)
		r.Get("/groups/{groupID}", h.getGroup)
		r.Put("/guests/{guestID}/attendance", h.setAttendance)

		r.Route("/manage", func(r chi.Router) {
			r.Get("/guests", h.listGuests)
			r.Put("/guests/{guestID}/attendance", h.updateGuest)
			r.Get("/guests/{guestID}/history", h.history)
			r.Put("/groups/{groupID}/attendance", h.bulkUpdateGroup)
			r.Get("/submissions/{submissionID}", h.submission)
		})
	})

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}, nil
}
