package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"better-life/internal/models"
)

// PostgresConfig mirrors the DB section of the service configuration.
type PostgresConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

// Postgres is the production store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

func NewPostgres(cfg PostgresConfig) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.MaxOpenConns,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnLifetime
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) CreateUser(ctx context.Context, profile models.UserProfile, passwordHash []byte) (models.UserProfile, error) {
	query := `
        INSERT INTO users (id, email, full_name, age, weight, height, activity_level, goals, language, location, password_hash, created_at)
        VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
        ON CONFLICT (email) DO NOTHING
        RETURNING created_at
    `

	profile.ID = uuid.NewString()
	if profile.Goals == nil {
		profile.Goals = []string{}
	}
	err := p.pool.QueryRow(ctx, query,
		profile.ID, profile.Email, profile.FullName,
		profile.Age, profile.Weight, profile.Height,
		profile.ActivityLevel, profile.Goals, profile.Language, profile.Location,
		passwordHash,
	).Scan(&profile.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to create user: %w", err)
	}

	return profile, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (models.UserProfile, []byte, error) {
	query := `
        SELECT id, email, full_name, age, weight, height, activity_level, COALESCE(goals, '{}'), language, location, password_hash, created_at
        FROM users
        WHERE email = LOWER($1)
    `

	var profile models.UserProfile
	var hash []byte
	err := p.pool.QueryRow(ctx, query, email).Scan(
		&profile.ID, &profile.Email, &profile.FullName,
		&profile.Age, &profile.Weight, &profile.Height,
		&profile.ActivityLevel, &profile.Goals, &profile.Language, &profile.Location,
		&hash, &profile.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, nil, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return profile, hash, nil
}

func (p *Postgres) UserByID(ctx context.Context, id string) (models.UserProfile, error) {
	query := `
        SELECT id, email, full_name, age, weight, height, activity_level, COALESCE(goals, '{}'), language, location, created_at
        FROM users
        WHERE id = $1
    `

	var profile models.UserProfile
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID, &profile.Email, &profile.FullName,
		&profile.Age, &profile.Weight, &profile.Height,
		&profile.ActivityLevel, &profile.Goals, &profile.Language, &profile.Location,
		&profile.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get user: %w", err)
	}

	return profile, nil
}

func (p *Postgres) SaveSession(ctx context.Context, token, userID string) error {
	query := `
        INSERT INTO sessions (token, user_id)
        VALUES ($1, $2)
        ON CONFLICT (token) DO UPDATE SET user_id = $2
    `

	_, err := p.pool.Exec(ctx, query, token, userID)
	return err
}

func (p *Postgres) UserBySession(ctx context.Context, token string) (models.UserProfile, error) {
	query := `
        SELECT u.id, u.email, u.full_name, u.age, u.weight, u.height, u.activity_level, COALESCE(u.goals, '{}'), u.language, u.location, u.created_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1
    `

	var profile models.UserProfile
	err := p.pool.QueryRow(ctx, query, token).Scan(
		&profile.ID, &profile.Email, &profile.FullName,
		&profile.Age, &profile.Weight, &profile.Height,
		&profile.ActivityLevel, &profile.Goals, &profile.Language, &profile.Location,
		&profile.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to resolve session: %w", err)
	}

	return profile, nil
}

func (p *Postgres) DeleteSession(ctx context.Context, token string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (p *Postgres) SavePendingTransaction(ctx context.Context, tx models.PendingTransaction) error {
	query := `
        INSERT INTO pending_transactions (provider_id, kind, customer_email, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (provider_id) DO UPDATE SET status = $4, updated_at = $6
    `

	_, err := p.pool.Exec(ctx, query,
		tx.ProviderID, tx.Kind, tx.CustomerEmail, tx.Status, tx.CreatedAt, tx.UpdatedAt,
	)
	return err
}

func (p *Postgres) PendingTransaction(ctx context.Context, providerID string) (models.PendingTransaction, error) {
	query := `
        SELECT provider_id, kind, customer_email, status, created_at, updated_at
        FROM pending_transactions
        WHERE provider_id = $1
    `

	var tx models.PendingTransaction
	err := p.pool.QueryRow(ctx, query, providerID).Scan(
		&tx.ProviderID, &tx.Kind, &tx.CustomerEmail, &tx.Status, &tx.CreatedAt, &tx.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.PendingTransaction{}, ErrNotFound
	}
	if err != nil {
		return models.PendingTransaction{}, fmt.Errorf("failed to get pending transaction: %w", err)
	}

	return tx, nil
}

func (p *Postgres) UpdatePendingTransactionStatus(ctx context.Context, providerID, status string) error {
	query := `
        UPDATE pending_transactions
        SET status = $2, updated_at = NOW()
        WHERE provider_id = $1
    `

	tag, err := p.pool.Exec(ctx, query, providerID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SaveMeal(ctx context.Context, entry *models.MealEntry) error {
	items, err := json.Marshal(entry.FoodItems)
	if err != nil {
		return fmt.Errorf("failed to encode food items: %w", err)
	}

	query := `
        INSERT INTO meal_entries (id, user_id, meal_type, food_items, calories, date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING created_at
    `

	entry.ID = uuid.NewString()
	return p.pool.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.MealType, items, entry.Calories, entry.Date,
	).Scan(&entry.CreatedAt)
}

func (p *Postgres) MealsByUser(ctx context.Context, userID string) ([]models.MealEntry, error) {
	query := `
        SELECT id, user_id, meal_type, food_items, calories, date, created_at
        FROM meal_entries
        WHERE user_id = $1
        ORDER BY created_at
    `

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var out []models.MealEntry
	for rows.Next() {
		var entry models.MealEntry
		var items []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.MealType, &items, &entry.Calories, &entry.Date, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &entry.FoodItems); err != nil {
				return nil, fmt.Errorf("failed to decode food items: %w", err)
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (p *Postgres) SaveWorkout(ctx context.Context, entry *models.WorkoutEntry) error {
	query := `
        INSERT INTO workout_entries (id, user_id, exercise_type, duration, intensity, calories_burned, date, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        RETURNING created_at
    `

	entry.ID = uuid.NewString()
	return p.pool.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.ExerciseType, entry.Duration,
		entry.Intensity, entry.CaloriesBurned, entry.Date, entry.Notes,
	).Scan(&entry.CreatedAt)
}

func (p *Postgres) WorkoutsByUser(ctx context.Context, userID string) ([]models.WorkoutEntry, error) {
	query := `
        SELECT id, user_id, exercise_type, duration, intensity, calories_burned, date, notes, created_at
        FROM workout_entries
        WHERE user_id = $1
        ORDER BY created_at
    `

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var out []models.WorkoutEntry
	for rows.Next() {
		var entry models.WorkoutEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.ExerciseType, &entry.Duration,
			&entry.Intensity, &entry.CaloriesBurned, &entry.Date, &entry.Notes, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (p *Postgres) SaveHydration(ctx context.Context, entry *models.HydrationEntry) error {
	query := `
        INSERT INTO hydration_entries (id, user_id, amount_ml, date, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING created_at
    `

	entry.ID = uuid.NewString()
	return p.pool.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.AmountML, entry.Date,
	).Scan(&entry.CreatedAt)
}

func (p *Postgres) HydrationByUser(ctx context.Context, userID string) ([]models.HydrationEntry, error) {
	query := `
        SELECT id, user_id, amount_ml, date, created_at
        FROM hydration_entries
        WHERE user_id = $1
        ORDER BY created_at
    `

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hydration entries: %w", err)
	}
	defer rows.Close()

	var out []models.HydrationEntry
	for rows.Next() {
		var entry models.HydrationEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.AmountML, &entry.Date, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
