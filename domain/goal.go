package domain

import "time"

type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
)

func (s GoalStatus) Valid() bool {
	return s == GoalActive || s == GoalCompleted
}

// Goal is a weekly numeric target. Status is set by the caller and is not derived
// from CurrentValue reaching TargetValue.
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	TargetValue  int        `json:"targetValue"`
	CurrentValue int        `json:"currentValue"`
	Unit         string     `json:"unit"`
	WeekStart    time.Time  `json:"weekStart"`
	Status       GoalStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (g *Goal) Apply(in GoalInput) {
	g.Title = in.Title
	g.TargetValue = in.TargetValue
	g.CurrentValue = in.CurrentValue
	g.Unit = in.Unit
	g.WeekStart = in.WeekStart
	g.Status = in.Status
}

type GoalInput struct {
	Title        string
	TargetValue  int
	CurrentValue int
	Unit         string
	WeekStart    time.Time
	Status       GoalStatus
}

func (in GoalInput) Validate() error {
	var v Validator
	v.Length("title", in.Title, 2, MaxTextLength)
	v.Check(in.TargetValue > 0, "targetValue", "must be positive")
	v.Check(in.CurrentValue >= 0, "currentValue", "must not be negative")
	v.Length("unit", in.Unit, 1, MaxTextLength)
	v.Check(!in.WeekStart.IsZero(), "weekStart", "required")
	v.Check(in.Status.Valid(), "status", "must be one of ACTIVE, COMPLETED")
	return v.Err()
}

type GoalFilter struct {
	Search string
}
