package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero2prod/newsletter/internal/entity"
	gerr "github.com/zero2prod/newsletter/internal/errors"
)

func TestSubscriptions_AddSubscription(t *testing.T) {
	db := newTestDB(t)
	ss := db.Subscriptions()

	ctx := context.Background()

	id, err := ss.AddSubscription(ctx, &entity.SubscriptionInsert{
		Email: "ursula_le_guin@gmail.com",
		Name:  "le guin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	saved, err := QueryNamedOne[entity.Subscription](ctx, db.DB(), `SELECT id, email, name, subscribed_at FROM subscriptions WHERE id = :id`, map[string]any{
		"id": id,
	})
	require.NoError(t, err)
	assert.Equal(t, "ursula_le_guin@gmail.com", saved.Email)
	assert.Equal(t, "le guin", saved.Name)
	assert.False(t, saved.SubscribedAt.IsZero())
}

func TestSubscriptions_AddSubscriptionEmptyFields(t *testing.T) {
	db := newTestDB(t)

	id, err := db.Subscriptions().AddSubscription(context.Background(), &entity.SubscriptionInsert{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSubscriptions_AddSubscriptionLongValues(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	name := strings.Repeat("ü", 512)
	email := strings.Repeat("a", 1000) + "@mail.test"

	id, err := db.Subscriptions().AddSubscription(ctx, &entity.SubscriptionInsert{
		Email: email,
		Name:  name,
	})
	require.NoError(t, err)

	saved, err := QueryNamedOne[entity.Subscription](ctx, db.DB(), `SELECT id, email, name, subscribed_at FROM subscriptions WHERE id = :id`, map[string]any{
		"id": id,
	})
	require.NoError(t, err)
	assert.Equal(t, name, saved.Name)
	assert.Equal(t, email, saved.Email)
}

func TestSubscriptions_AddSubscriptionEmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	ss := db.Subscriptions()
	ctx := context.Background()

	_, err := ss.AddSubscription(ctx, &entity.SubscriptionInsert{Email: "case@mail.test", Name: "lower"})
	require.NoError(t, err)
	_, err = ss.AddSubscription(ctx, &entity.SubscriptionInsert{Email: "CASE@mail.test", Name: "upper"})
	assert.NoError(t, err)
}

func TestSubscriptions_AddSubscriptionDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ss := db.Subscriptions()

	ctx := context.Background()
	sub := &entity.SubscriptionInsert{Email: "dup@mail.test", Name: "dup"}

	_, err := ss.AddSubscription(ctx, sub)
	require.NoError(t, err)

	_, err = ss.AddSubscription(ctx, sub)
	assert.ErrorIs(t, err, gerr.ErrAlreadySubscribed)
	assert.True(t, db.IsErrUniqueViolation(err))
}
