package domain

import "time"

// TaskStatus is serialized as a bare integer in JSON and stored as an
// integer column.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

// Valid reports whether s is one of the defined statuses.
func (s TaskStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	UserID      int64      `json:"user_id" db:"user_id"`
	CreatedAt   string     `json:"created_at" db:"created_at"`
	UpdatedAt   *string    `json:"updated_at,omitempty" db:"updated_at"`
}

// TaskDTO is the task projection returned by the API: the task row plus the
// owner's email, joined at query time. Never persisted.
type TaskDTO struct {
	Task
	OwnerEmail string `json:"owner_email" db:"owner_email"`
}

// TimeLayout is the fixed-width UTC layout used for created_at and
// updated_at columns. Zero padded so lexicographic order matches
// chronological order.
const TimeLayout = "2006-01-02 15:04:05.000000000"

// Now returns the current UTC time formatted for storage.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}
