package suggestion

import (
	"context"
	"errors"
)

// SystemInstruction frames every request sent to the model.
const SystemInstruction = "You are a professional task management assistant, skilled at analyzing and planning tasks."

// Errors returned by Suggester implementations.
var (
	// ErrUpstream is returned when the model could not be reached or kept
	// failing after retries.
	ErrUpstream = errors.New("suggestion upstream failure")

	// ErrInvalidResponse is returned when the model answered with nothing usable.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model refused on safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the client is misconfigured.
	ErrInvalidConfig = errors.New("invalid suggestion client configuration")

	// ErrEmptyPrompt is returned for a blank prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// Suggester produces planning advice for a prompt.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}
