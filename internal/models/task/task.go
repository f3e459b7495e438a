package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Status      Status     `json:"status" db:"status"`
	IsDeleted   bool       `json:"is_deleted" db:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Status string

const StatusNotStarted Status = "not_started"
const StatusInProgress Status = "in_progress"
const StatusCompleted Status = "completed"
const StatusCanceled Status = "canceled"

// StatusAll не является статусом задачи, это значение фильтра списка
const StatusAll = "all"

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
