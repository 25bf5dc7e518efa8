package models

import (
	"time"
)

// Topic selects which assistant persona and fallback bank answer a query.
type Topic string

const (
	TopicDiet         Topic = "diet"
	TopicMentalHealth Topic = "mental_health"
)

// Valid reports whether t is one of the supported advice topics.
func (t Topic) Valid() bool {
	return t == TopicDiet || t == TopicMentalHealth
}

// Metadata is an open string-keyed map attached to payment and subscription
// requests. Known optional keys:
//
//	"user_id"    - internal id of the paying user
//	"plan_name"  - display name of the subscribed plan
//	"service_id" - catalog id of a purchased one-time service
type Metadata map[string]string

type UserProfile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Age           int       `json:"age,omitempty"`
	Weight        int       `json:"weight,omitempty"`
	Height        int       `json:"height,omitempty"`
	ActivityLevel string    `json:"activity_level,omitempty"`
	Goals         []string  `json:"goals,omitempty"`
	Language      string    `json:"language,omitempty"`
	Location      string    `json:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of a chat transcript. Messages are never mutated
// after creation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Topic     Topic     `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionKind distinguishes what a pending transaction was created for.
type TransactionKind string

const (
	TransactionPayment      TransactionKind = "payment"
	TransactionSubscription TransactionKind = "subscription"
)

// PendingTransaction is the client-side record persisted before the user is
// redirected to the provider checkout page, keyed by the provider id, so the
// purchase can be reconciled when the user returns.
type PendingTransaction struct {
	ProviderID    string          `json:"provider_id"`
	Kind          TransactionKind `json:"kind"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type FoodItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Quantity string  `json:"quantity"`
}

type MealEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	MealType  string     `json:"meal_type"`
	FoodItems []FoodItem `json:"food_items"`
	Calories  int        `json:"calories"`
	Date      string     `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
}

type WorkoutEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ExerciseType   string    `json:"exercise_type"`
	Duration       int       `json:"duration"`
	Intensity      string    `json:"intensity"`
	CaloriesBurned int       `json:"calories_burned"`
	Date           string    `json:"date"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type HydrationEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AmountML  int       `json:"amount_ml"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
