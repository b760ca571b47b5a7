package domain

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a user-owned activity item.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskDone
}

// Apply copies the input onto the task and maintains the first-completion timestamp:
// entering DONE stamps CompletedAt only when it was never set, and leaving DONE keeps it.
func (t *Task) Apply(in TaskInput, now time.Time) {
	t.Title = in.Title
	t.Description = in.Description
	t.Status = in.Status
	t.Priority = in.Priority
	t.DueDate = in.DueDate
	if t.Status == TaskDone && t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// TaskInput carries the client-writable task fields.
type TaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

func (in TaskInput) Validate() error {
	var v Validator
	in.validate(&v)
	return v.Err()
}

func (in TaskInput) validate(v *Validator) {
	v.Length("title", in.Title, 2, MaxTextLength)
	if in.Description != nil {
		v.Length("description", *in.Description, 0, MaxTextLength)
	}
	v.Check(in.Status.Valid(), "status", "must be one of TODO, IN_PROGRESS, DONE")
	v.Check(in.Priority.Valid(), "priority", "must be one of LOW, MEDIUM, HIGH")
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Status TaskStatus
	Search string
}

func (f TaskFilter) Validate() error {
	var v Validator
	v.Check(f.Status == "" || f.Status.Valid(), "status", "must be one of TODO, IN_PROGRESS, DONE")
	v.Length("search", f.Search, 0, MaxTextLength)
	return v.Err()
}
