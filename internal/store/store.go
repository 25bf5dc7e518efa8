package store

import (
	"context"
	"errors"

	"better-life/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore holds registered users and their credential hashes.
type UserStore interface {
	CreateUser(ctx context.Context, profile models.UserProfile, passwordHash []byte) (models.UserProfile, error)
	UserByEmail(ctx context.Context, email string) (models.UserProfile, []byte, error)
	UserByID(ctx context.Context, id string) (models.UserProfile, error)
}

// SessionStore maps session tokens to users.
type SessionStore interface {
	SaveSession(ctx context.Context, token, userID string) error
	UserBySession(ctx context.Context, token string) (models.UserProfile, error)
	DeleteSession(ctx context.Context, token string) error
}

// TransactionStore keeps pending-transaction records keyed by provider id.
type TransactionStore interface {
	SavePendingTransaction(ctx context.Context, tx models.PendingTransaction) error
	PendingTransaction(ctx context.Context, providerID string) (models.PendingTransaction, error)
	UpdatePendingTransactionStatus(ctx context.Context, providerID, status string) error
}

// TrackerStore keeps the activity tracker entries. Save methods assign the
// entry id and creation time.
type TrackerStore interface {
	SaveMeal(ctx context.Context, entry *models.MealEntry) error
	MealsByUser(ctx context.Context, userID string) ([]models.MealEntry, error)
	SaveWorkout(ctx context.Context, entry *models.WorkoutEntry) error
	WorkoutsByUser(ctx context.Context, userID string) ([]models.WorkoutEntry, error)
	SaveHydration(ctx context.Context, entry *models.HydrationEntry) error
	HydrationByUser(ctx context.Context, userID string) ([]models.HydrationEntry, error)
}

// Store is the full storage capability injected into the services; there is
// no ambient global state. Implementations: Memory (demo) and Postgres.
type Store interface {
	UserStore
	SessionStore
	TransactionStore
	TrackerStore
	Close()
}
