package api

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username    string `json:"username"    validate:"required,min=3,max=64"`
	DisplayName string `json:"displayName" validate:"max=100"`
	Password    string `json:"password"    validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	// Token is sent back as "Authorization: Bearer <token>".
	Token string `json:"token,omitempty"`
	// ExpiresAt is the RFC3339 expiry of Token.
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// DeleteTasksRequest defines the payload for bulk deletion.
type DeleteTasksRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// SetTodayRequest defines the payload for toggling the today flag.
type SetTodayRequest struct {
	IsTodayTask *bool `json:"isTodayTask" validate:"required"`
}

// SuggestRequest defines the payload for the AI suggestion endpoint.
type SuggestRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// SuggestResponse carries the assistant's advice.
type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// IDResponse is returned by operations that create or modify one task.
type IDResponse struct {
	ID int64 `json:"id"`
}

// DeletedResponse is returned by delete operations.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
