package models

import "time"

// Status is the completion state of a task
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// TimestampLayout is the text encoding of Task.Timestamp in the tasks table
const TimestampLayout = time.DateTime

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggle returns the opposite status
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

func (s Status) String() string { return string(s) }

// Task represents a single task
type Task struct {
	ID        int64
	Title     string
	Body      string
	Status    Status
	Timestamp time.Time // last write to the row
}

// Completed reports whether the task is done
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}
