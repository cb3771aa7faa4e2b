package store

import (
	"context"
	"fmt"

	"github.com/Knetic/go-namedParameterQuery"
	"github.com/jmoiron/sqlx"
	"github.com/zero2prod/newsletter/internal/dependency"
)

// namedToPositional expands :named parameters into the placeholders of
// the connection's driver.
func namedToPositional(conn dependency.DB, query string, params map[string]any) (string, []any, error) {
	queryNamed := namedParameterQuery.NewNamedParameterQuery(query)
	queryNamed.SetValuesFromMap(params)
	query, args, err := sqlx.In(queryNamed.GetParsedQuery(), queryNamed.GetParsedParameters()...)
	if err != nil {
		return "", nil, fmt.Errorf("sqlx In: %w", err)
	}
	return conn.Rebind(query), args, nil
}

func QueryNamedOne[T any](ctx context.Context, conn dependency.DB, query string, params map[string]any) (T, error) {
	var target T
	query, args, err := namedToPositional(conn, query, params)
	if err != nil {
		return target, err
	}

	if err := conn.GetContext(ctx, &target, query, args...); err != nil {
		return target, fmt.Errorf("get context: %w", err)
	}
	return target, nil
}

// nolint: interfacer
func ExecNamed(
	ctx context.Context,
	conn dependency.DB,
	query string,
	params map[string]any,
) error {
	query, args, err := namedToPositional(conn, query, params)
	if err != nil {
		return err
	}
	_, err = conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ExecContext: %w", err)
	}

	return nil
}
