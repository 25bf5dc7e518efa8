package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"better-life/internal/models"
)

// Memory is the demo store: everything lives in process memory and is lost
// on restart.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]models.UserProfile // keyed by user id
	hashes       map[string][]byte             // keyed by user id
	emails       map[string]string             // lower(email) -> user id
	sessions     map[string]string             // token -> user id
	transactions map[string]models.PendingTransaction
	meals        map[string][]models.MealEntry
	workouts     map[string][]models.WorkoutEntry
	hydration    map[string][]models.HydrationEntry
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[string]models.UserProfile),
		hashes:       make(map[string][]byte),
		emails:       make(map[string]string),
		sessions:     make(map[string]string),
		transactions: make(map[string]models.PendingTransaction),
		meals:        make(map[string][]models.MealEntry),
		workouts:     make(map[string][]models.WorkoutEntry),
		hydration:    make(map[string][]models.HydrationEntry),
	}
}

func (m *Memory) Close() {}

func (m *Memory) CreateUser(ctx context.Context, profile models.UserProfile, passwordHash []byte) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(profile.Email)
	if _, exists := m.emails[key]; exists {
		return models.UserProfile{}, ErrDuplicateEmail
	}

	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now().UTC()

	m.users[profile.ID] = profile
	m.hashes[profile.ID] = passwordHash
	m.emails[key] = profile.ID
	return profile, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (models.UserProfile, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return models.UserProfile{}, nil, ErrNotFound
	}
	return m.users[id], m.hashes[id], nil
}

func (m *Memory) UserByID(ctx context.Context, id string) (models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.users[id]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return profile, nil
}

func (m *Memory) SaveSession(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return nil
}

func (m *Memory) UserBySession(ctx context.Context, token string) (models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userID, ok := m.sessions[token]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	profile, ok := m.users[userID]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return profile, nil
}

func (m *Memory) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *Memory) SavePendingTransaction(ctx context.Context, tx models.PendingTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ProviderID] = tx
	return nil
}

func (m *Memory) PendingTransaction(ctx context.Context, providerID string) (models.PendingTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[providerID]
	if !ok {
		return models.PendingTransaction{}, ErrNotFound
	}
	return tx, nil
}

func (m *Memory) UpdatePendingTransactionStatus(ctx context.Context, providerID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[providerID]
	if !ok {
		return ErrNotFound
	}
	tx.Status = status
	tx.UpdatedAt = time.Now().UTC()
	m.transactions[providerID] = tx
	return nil
}

func (m *Memory) SaveMeal(ctx context.Context, entry *models.MealEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	m.meals[entry.UserID] = append(m.meals[entry.UserID], *entry)
	return nil
}

func (m *Memory) MealsByUser(ctx context.Context, userID string) ([]models.MealEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.MealEntry, len(m.meals[userID]))
	copy(out, m.meals[userID])
	return out, nil
}

func (m *Memory) SaveWorkout(ctx context.Context, entry *models.WorkoutEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	m.workouts[entry.UserID] = append(m.workouts[entry.UserID], *entry)
	return nil
}

func (m *Memory) WorkoutsByUser(ctx context.Context, userID string) ([]models.WorkoutEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.WorkoutEntry, len(m.workouts[userID]))
	copy(out, m.workouts[userID])
	return out, nil
}

func (m *Memory) SaveHydration(ctx context.Context, entry *models.HydrationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	m.hydration[entry.UserID] = append(m.hydration[entry.UserID], *entry)
	return nil
}

func (m *Memory) HydrationByUser(ctx context.Context, userID string) ([]models.HydrationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.HydrationEntry, len(m.hydration[userID]))
	copy(out, m.hydration[userID])
	return out, nil
}
