package sqlite

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

type userRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:64;not null;uniqueIndex"`
	DisplayName  string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Username:       r.Username,
		DisplayName:    r.DisplayName,
		HashedPassword: r.PasswordHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// taskRecord keeps due dates as "2006-01-02" text so range predicates
// compare lexically.
type taskRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null"`
	Description *string   `gorm:"type:text"`
	DueDate     *string   `gorm:"size:10;index"`
	Category    *string   `gorm:"size:64;index"`
	Status      string    `gorm:"size:5;not null;index"`
	IsTodayTask bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
	CreatedBy   *int64
	UpdatedBy   *int64
}

func (taskRecord) TableName() string { return "tasks" }

func newTaskRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dateText(t.DueDate),
		Category:    t.Category,
		Status:      t.Status.String(),
		IsTodayTask: t.IsTodayTask,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
	}
}

func (r *taskRecord) toDomain() (*domain.Task, error) {
	t := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Status:      domain.Status(r.Status),
		IsTodayTask: r.IsTodayTask,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
	}
	if r.DueDate != nil {
		d, err := domain.ParseDate(*r.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = &d
	}
	return t, nil
}

func dateText(d *domain.Date) *string {
	if d == nil || d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}
