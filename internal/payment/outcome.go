package payment

// FailureKind classifies why an operation failed, so callers and logs can
// tell a rejected request from a broken provider.
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureProvider   FailureKind = "provider"
	FailureTransport  FailureKind = "transport"
)

// Failure is the failed half of an Outcome. Reason is safe to show to the
// end user; the wrapped cause is kept for logging only.
type Failure struct {
	Kind   FailureKind
	Reason string
	cause  error
}

func (f *Failure) Error() string { return f.Reason }

func (f *Failure) Unwrap() error { return f.cause }

// Outcome is the tagged result returned at the orchestrator boundary instead
// of an error. Exactly one of the success fields or Failure is set.
type Outcome struct {
	ProviderID  string   `json:"provider_id,omitempty"`
	CheckoutURL string   `json:"checkout_url,omitempty"`
	Status      string   `json:"status,omitempty"`
	Failure     *Failure `json:"-"`
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return o.Failure == nil }

func success(s CheckoutSession) Outcome {
	return Outcome{ProviderID: s.ID, CheckoutURL: s.CheckoutURL, Status: s.Status}
}

func failure(kind FailureKind, reason string, cause error) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Reason: reason, cause: cause}}
}
