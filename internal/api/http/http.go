package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/zero2prod/newsletter/internal/apisrv/frontend"
	clientmw "github.com/zero2prod/newsletter/internal/middleware"
	"github.com/zero2prod/newsletter/log"
)

const defaultRequestTimeout = 60 * time.Second

// Config is the configuration for the http server
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// SubscribeRateLimit caps subscription requests per client IP within
	// SubscribeRateWindow. Zero disables the limit.
	SubscribeRateLimit  int           `mapstructure:"subscribe_rate_limit"`
	SubscribeRateWindow time.Duration `mapstructure:"subscribe_rate_window"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	addr net.Addr
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Addr returns the address the server listens on, nil before Serve.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Handler builds the router with every route and middleware attached.
func (s *Server) Handler(frontendServer *frontend.Server) http.Handler {
	timeout := s.c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientmw.ClientIdentifier)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(s.cors())

	r.Get("/health_check", frontendServer.HealthCheck)

	r.Group(func(r chi.Router) {
		if s.c.SubscribeRateLimit > 0 {
			r.Use(s.subscribeRateLimit())
		}
		r.Post("/subscriptions", frontendServer.Subscribe)
		// earlier clients post to /subscribe
		r.Post("/subscribe", frontendServer.Subscribe)
	})

	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context, frontendServer *frontend.Server) error {
	listenerAddr := net.JoinHostPort(s.c.Address, s.c.Port)
	l, err := net.Listen("tcp", listenerAddr)
	if err != nil {
		return fmt.Errorf("can't listen on %s: %w", listenerAddr, err)
	}
	return s.Serve(ctx, l, frontendServer)
}

// Serve serves on an already bound listener in the background. Done is
// closed once the server stops.
func (s *Server) Serve(ctx context.Context, l net.Listener, frontendServer *frontend.Server) error {
	if s.hs != nil {
		return errors.New("http server already started")
	}

	s.addr = l.Addr()
	s.hs = &http.Server{
		Handler:           s.Handler(frontendServer),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, fmt.Sprintf("newsletter new listener on: http://%v", s.addr))
		err := s.hs.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

// subscribeRateLimit limits subscription requests per client IP as
// resolved by the ClientIdentifier middleware.
func (s *Server) subscribeRateLimit() func(http.Handler) http.Handler {
	window := s.c.SubscribeRateWindow
	if window <= 0 {
		window = time.Hour
	}
	return httprate.Limit(
		s.c.SubscribeRateLimit, // requests
		window,                 // per duration
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return clientmw.GetClientIP(r.Context()), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Default().WarnContext(r.Context(), "subscription rate limit exceeded",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("client_ip", clientmw.GetClientIP(r.Context())),
			)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}

// cors implements Cross Origin Resource Sharing for the configured origins.
// Requests without an Origin header pass through untouched.
func (s *Server) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		MaxAge:         300,
	})
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}

	return false
}
