package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zero2prod/newsletter/internal/dependency"
	"github.com/zero2prod/newsletter/internal/entity"
	gerr "github.com/zero2prod/newsletter/internal/errors"
)

type subscriptionsStore struct {
	*Store
}

// Subscriptions returns an object implementing Subscriptions interface
func (s *Store) Subscriptions() dependency.Subscriptions {
	return &subscriptionsStore{
		Store: s,
	}
}

// AddSubscription inserts a single subscription row under a freshly
// generated id. Email and name are stored as given.
func (ss *subscriptionsStore) AddSubscription(ctx context.Context, sub *entity.SubscriptionInsert) (string, error) {
	id := uuid.New().String()
	err := ExecNamed(ctx, ss.DB(), `INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES (:id, :email, :name, :subscribedAt)`, map[string]any{
		"id":           id,
		"email":        sub.Email,
		"name":         sub.Name,
		"subscribedAt": ss.Now(),
	})
	if err != nil {
		if ss.IsErrUniqueViolation(err) {
			return "", fmt.Errorf("failed to add subscription: %w: %w", gerr.ErrAlreadySubscribed, err)
		}
		return "", fmt.Errorf("failed to add subscription: %w", err)
	}
	return id, nil
}
