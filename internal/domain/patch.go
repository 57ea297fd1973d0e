package domain

import (
	"strings"
	"time"
)

// UpdateMode tells how a patch was applied.
type UpdateMode int

const (
	// UpdateModeStatusOnly copies the status and nothing else from the patch.
	UpdateModeStatusOnly UpdateMode = iota + 1
	// UpdateModeFull validates the merged record and overwrites every present field.
	UpdateModeFull
)

// String returns a log-friendly name.
func (m UpdateMode) String() string {
	switch m {
	case UpdateModeStatusOnly:
		return "status_only"
	case UpdateModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// TaskPatch is a presence-aware update request. Omitted fields keep their
// stored value; explicit nulls clear nullable fields.
type TaskPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	DueDate     Optional[Date]   `json:"dueDate"`
	Category    Optional[string] `json:"category"`
	Status      Optional[Status] `json:"status"`
	IsTodayTask Optional[bool]   `json:"isTodayTask"`
}

// Mode classifies the patch. A patch is status-only when the status is
// present and none of title, description, category or due date is.
// IsTodayTask does not take part in the classification.
func (p TaskPatch) Mode() UpdateMode {
	if p.Status.Set && !p.Title.Set && !p.Description.Set && !p.Category.Set && !p.DueDate.Set {
		return UpdateModeStatusOnly
	}
	return UpdateModeFull
}

// Apply merges the patch into t, stamps the actor and time, and returns the
// mode that was used. t is left untouched when an error is returned.
func (p TaskPatch) Apply(t *Task, actorID int64, now time.Time) (UpdateMode, error) {
	mode := p.Mode()
	merged := *t

	switch mode {
	case UpdateModeStatusOnly:
		status, err := p.status()
		if err != nil {
			return mode, err
		}
		merged.Status = status
	default:
		if err := p.applyFull(&merged); err != nil {
			return mode, err
		}
	}

	if today, ok := p.IsTodayTask.Get(); ok {
		merged.IsTodayTask = today
	}
	merged.Touch(actorID, now)

	*t = merged
	return mode, nil
}

func (p TaskPatch) status() (Status, error) {
	status, ok := p.Status.Get()
	if !ok {
		return "", NewValidationError("status", "status cannot be null", ErrInvalidStatus)
	}
	if !status.Valid() {
		return "", NewValidationError("status", `status must be "true" or "false"`, ErrInvalidStatus)
	}
	return status, nil
}

func (p TaskPatch) applyFull(t *Task) error {
	title, ok := p.Title.Get()
	if !ok || strings.TrimSpace(title) == "" {
		return NewValidationError("title", "title is required", nil)
	}
	t.Title = strings.TrimSpace(title)

	if p.Description.Set {
		t.Description = TrimToNil(optionalPtr(p.Description))
	}
	if p.Category.Set {
		t.Category = TrimToNil(optionalPtr(p.Category))
	}
	if p.DueDate.Set {
		t.DueDate = nonZeroDate(optionalPtr(p.DueDate))
	}
	if p.Status.Set {
		status, err := p.status()
		if err != nil {
			return err
		}
		t.Status = status
	}

	return t.Validate()
}

func optionalPtr[T any](o Optional[T]) *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}
