// Package suggestion defines the boundary to the AI planning assistant.
// Implementations (see platform/gemini) turn a free-form prompt into
// advice text and classify failures with the errors declared here.
package suggestion
