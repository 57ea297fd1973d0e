package api

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// SuggestionHandler exposes the AI planning assistant.
type SuggestionHandler struct {
	suggestions service.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// Suggest handles POST /api/ai/suggest. Every upstream failure yields the
// same generic message.
func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req SuggestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	advice, err := h.suggestions.Suggest(r.Context(), actor, req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SuggestResponse{Suggestion: advice})
}
