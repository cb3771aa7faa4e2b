package log

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	clientmw "github.com/zero2prod/newsletter/internal/middleware"
)

type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}

var (
	initOnce sync.Once
	logger   *slog.Logger
)

// Init installs a JSON logger writing to stdout as the process default.
// Only the first call has an effect; later calls return the logger
// installed by it.
func Init(cfg Config) *slog.Logger {
	return InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter is Init with a custom sink.
func InitWithWriter(cfg Config, w io.Writer) *slog.Logger {
	initOnce.Do(func() {
		logger = New(cfg, w)
		slog.SetDefault(logger)
	})
	return logger
}

// New builds a JSON logger without touching the process default.
func New(cfg Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     slog.Level(cfg.Level),
		AddSource: cfg.AddSource,
	}))
}

// RequestLogger logs one line per served request. It expects chi's
// RequestID and the ClientIdentifier middleware to run first.
func RequestLogger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				l.InfoContext(r.Context(), "request served",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("client_ip", clientmw.GetClientIP(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
