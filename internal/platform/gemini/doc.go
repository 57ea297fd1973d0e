// Package gemini implements suggestion.Suggester on top of the Google
// Gemini API (google.golang.org/genai). Calls are retried with
// exponential backoff and jitter; safety blocks and unusable responses
// are permanent and returned immediately.
package gemini
