package app

import (
	"context"
	"log/slog"
	"net"

	"github.com/zero2prod/newsletter/config"
	httpapi "github.com/zero2prod/newsletter/internal/api/http"
	"github.com/zero2prod/newsletter/internal/apisrv/frontend"
	"github.com/zero2prod/newsletter/internal/dependency"
	"github.com/zero2prod/newsletter/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App. When rep is nil a database
// connection is opened from the config on Start.
func New(c *config.Config, rep dependency.Repository) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
		db:   rep,
	}
}

// Start starts the app on the configured address
func (a *App) Start(ctx context.Context) error {
	return a.start(ctx, nil)
}

// StartListener starts the app on an already bound listener
func (a *App) StartListener(ctx context.Context, l net.Listener) error {
	return a.start(ctx, l)
}

func (a *App) start(ctx context.Context, l net.Listener) error {
	slog.Default().InfoContext(ctx, "starting newsletter")

	if a.db == nil {
		db, err := store.New(ctx, a.c.Database)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to database",
				slog.String("err", err.Error()),
			)
			return err
		}
		a.db = db
	}

	frontendS := frontend.New(a.db)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	var err error
	if l != nil {
		err = a.hs.Serve(ctx, l, frontendS)
	} else {
		err = a.hs.Start(ctx, frontendS)
	}
	if err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		close(a.done)
	}()

	return nil
}

// Addr returns the address the http server listens on
func (a *App) Addr() net.Addr {
	if a.hs == nil {
		return nil
	}
	return a.hs.Addr()
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
		<-a.done
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Done returns a channel that is closed after the http server has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
