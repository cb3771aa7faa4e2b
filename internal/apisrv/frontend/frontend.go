package frontend

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/zero2prod/newsletter/internal/dependency"
	gerr "github.com/zero2prod/newsletter/internal/errors"
	"github.com/zero2prod/newsletter/internal/form"
)

// Server implements handlers for frontend requests.
type Server struct {
	repo dependency.Repository
}

// New creates a new server with frontend handlers.
func New(r dependency.Repository) *Server {
	return &Server{
		repo: r,
	}
}

// HealthCheck answers liveness probes with an empty 200.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// requestID returns the id the RequestID middleware assigned to r, a new
// uuid when the handler is served without it.
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

// Subscribe stores the name and email of a url-encoded form.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestID(r)

	req, err := form.BindSubscribe(w, r)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		slog.Default().InfoContext(ctx, "can't bind subscription form",
			slog.String("request_id", reqID),
			slog.String("err", err.Error()),
		)
		http.Error(w, err.Error(), status)
		return
	}

	sub := req.Insert()
	l := slog.Default().With(
		slog.String("request_id", reqID),
		slog.String("subscriber_email", sub.Email),
		slog.String("subscriber_name", sub.Name),
	)
	l.InfoContext(ctx, "adding a new subscriber")

	id, err := s.repo.Subscriptions().AddSubscription(ctx, sub)
	if err != nil {
		if errors.Is(err, gerr.ErrAlreadySubscribed) {
			l.WarnContext(ctx, "can't save new subscriber details: email already subscribed")
		} else {
			l.ErrorContext(ctx, "can't save new subscriber details",
				slog.String("err", err.Error()),
			)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	l.InfoContext(ctx, "new subscriber details saved",
		slog.String("subscription_id", id),
	)
	w.WriteHeader(http.StatusOK)
}
