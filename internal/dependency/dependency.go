package dependency

import (
	"context"
	"database/sql"

	"github.com/zero2prod/newsletter/internal/entity"
)

//go:generate mockery --with-expecter --case underscore --name "Subscriptions|Repository" --output=./mocks
type (
	Subscriptions interface {
		// AddSubscription stores a new subscription and returns its generated id.
		AddSubscription(ctx context.Context, sub *entity.SubscriptionInsert) (string, error)
	}

	Repository interface {
		Subscriptions() Subscriptions
		Close()
	}

	// DB represents database interface.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		Rebind(query string) string

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
