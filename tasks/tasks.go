package tasks

import "time"

// StageType represents the board column a task sits in
type StageType string

const (
	StageTodo       StageType = "todo"
	StageInProgress StageType = "in progress"
	StageCompleted  StageType = "completed"
)

// PriorityType represents the urgency of a task
type PriorityType string

const (
	PriorityHigh   PriorityType = "high"
	PriorityMedium PriorityType = "medium"
	PriorityNormal PriorityType = "normal"
	PriorityLow    PriorityType = "low"
)

type Task struct {
	ID        string       `json:"id,omitempty"`
	Title     string       `json:"title"`
	Stage     StageType    `json:"stage"`
	Priority  PriorityType `json:"priority"`
	Date      time.Time    `json:"date,omitempty"`
	TeamIDs   []string     `json:"team,omitempty"` // IDs of users assigned to the task
	IsTrashed bool         `json:"isTrashed"`      // Trashed tasks are hidden, not deleted
	CreatedAt time.Time    `json:"createdAt,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt,omitempty"`
}
