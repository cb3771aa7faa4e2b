package entity

import "time"

// Subscription represents the subscriptions table
type Subscription struct {
	ID           string    `db:"id"`
	SubscribedAt time.Time `db:"subscribed_at"`
	SubscriptionInsert
}

type SubscriptionInsert struct {
	Email string `db:"email"`
	Name  string `db:"name"`
}
