package catalog

// Plan is a subscription pricing plan. The catalog is immutable and defined
// at process start; prices are in minor currency units.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Currency string   `json:"currency"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
}

// Service is a one-time purchasable service.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanPro     = "pro"
)

var plans = []Plan{
	{
		ID:       PlanBasic,
		Name:     "Basic Plan",
		Price:    999, // KES 9.99
		Currency: "KES",
		Interval: "month",
		Features: []string{
			"Basic nutrition tracking",
			"Workout logging",
			"Hydration monitoring",
			"Basic AI assistance",
			"Community access",
		},
	},
	{
		ID:       PlanPremium,
		Name:     "Premium Plan",
		Price:    2999, // KES 29.99
		Currency: "KES",
		Interval: "month",
		Features: []string{
			"Everything in Basic",
			"Advanced AI nutrition advice",
			"Mental health AI support",
			"Progress analytics",
			"Priority support",
			"2 expert consultations/month",
		},
	},
	{
		ID:       PlanPro,
		Name:     "Pro Plan",
		Price:    4999, // KES 49.99
		Currency: "KES",
		Interval: "month",
		Features: []string{
			"Everything in Premium",
			"Unlimited expert consultations",
			"Personalized meal plans",
			"Custom workout programs",
			"Advanced analytics",
			"White-label features",
		},
	},
}

var services = []Service{
	{
		ID:          "expert-consultation",
		Name:        "Expert Consultation",
		Price:       1500, // KES 15.00
		Currency:    "KES",
		Description: "One-on-one consultation with certified nutrition or mental health expert",
	},
	{
		ID:          "meal-plan",
		Name:        "Personalized Meal Plan",
		Price:       2500, // KES 25.00
		Currency:    "KES",
		Description: "Custom 30-day meal plan designed for your goals and preferences",
	},
	{
		ID:          "workout-program",
		Name:        "Custom Workout Program",
		Price:       2000, // KES 20.00
		Currency:    "KES",
		Description: "Personalized 12-week workout program designed by fitness experts",
	},
}

// Plans returns all subscription plans in ascending price order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a plan by its identifier.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Services returns all one-time services.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ServiceByID looks up a one-time service by its identifier.
func ServiceByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
