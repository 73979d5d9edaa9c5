package llm

import "errors"

var (
	// ErrTimeout is returned when the provider does not answer in time.
	ErrTimeout = errors.New("generator timed out")
	// ErrProvider is returned for API and transport failures.
	ErrProvider = errors.New("generator request failed")
)

// Params holds parameters for chat completion requests.
type Params struct {
	// Model specifies the model to use.
	Model string

	// MaxTokens caps the generated answer.
	MaxTokens int

	// Temperature controls the randomness of the output. Kept low so the
	// model stays close to the supplied context.
	Temperature float32
}

// DefaultParams returns the completion parameters used for answers.
func DefaultParams(model string) Params {
	return Params{
		Model:       model,
		MaxTokens:   500,
		Temperature: 0.3,
	}
}
