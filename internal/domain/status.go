package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Status is the completion state of a task. Only two literals are valid;
// they are stored and serialized exactly as written below.
type Status string

const (
	StatusCompleted Status = "true"
	StatusPending   Status = "false"
)

// Valid reports whether s is one of the two status literals.
func (s Status) Valid() bool {
	return s == StatusCompleted || s == StatusPending
}

// IsCompleted reports whether the task is done.
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// String returns the stored literal.
func (s Status) String() string {
	return string(s)
}

// ParseStatus trims s and checks it against the two literals.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	if !status.Valid() {
		return "", NewValidationError("status", `status must be "true" or "false"`, ErrInvalidStatus)
	}
	return status, nil
}

// UnmarshalJSON accepts either the string literals or JSON booleans.
// Unknown strings are kept as-is so that validation can reject them
// with a field-level message.
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*s = StatusCompleted
		return nil
	case "false":
		*s = StatusPending
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewValidationError("status", "status must be a string or boolean", ErrInvalidStatus)
	}
	*s = Status(strings.TrimSpace(raw))
	return nil
}
