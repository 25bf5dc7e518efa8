package advice

import "context"

// Generator produces a free-text reply for a prompt. Implementations talk to
// a remote inference endpoint; any error makes the pipeline fall back to the
// deterministic response bank.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
