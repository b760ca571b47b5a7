package domain

import "time"

type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "DAILY"
	FrequencyWeekly HabitFrequency = "WEEKLY"
)

func (f HabitFrequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit is a recurring behaviour the user tracks through daily logs.
type Habit struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Name          string         `json:"name"`
	Frequency     HabitFrequency `json:"frequency"`
	TargetPerWeek *int           `json:"targetPerWeek"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (h *Habit) Apply(in HabitInput) {
	h.Name = in.Name
	h.Frequency = in.Frequency
	h.TargetPerWeek = in.TargetPerWeek
}

type HabitInput struct {
	Name          string
	Frequency     HabitFrequency
	TargetPerWeek *int
}

func (in HabitInput) Validate() error {
	var v Validator
	v.Length("name", in.Name, 2, MaxTextLength)
	v.Check(in.Frequency.Valid(), "frequency", "must be one of DAILY, WEEKLY")
	v.Check(in.TargetPerWeek == nil || *in.TargetPerWeek > 0, "targetPerWeek", "must be positive")
	return v.Err()
}

// HabitLog records how many times a habit happened on one calendar day.
// (HabitID, Date) is unique; logging again replaces Count.
type HabitLog struct {
	ID      string    `json:"id"`
	HabitID string    `json:"habitId"`
	UserID  string    `json:"userId"`
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
}

// HabitLogInput is one log request; a nil Count means a single occurrence.
type HabitLogInput struct {
	Date  time.Time
	Count *int
}

func (in HabitLogInput) Validate() error {
	var v Validator
	v.Check(!in.Date.IsZero(), "date", "required")
	v.Check(in.Count == nil || *in.Count > 0, "count", "must be positive")
	return v.Err()
}

func (in HabitLogInput) CountOrDefault() int {
	if in.Count == nil {
		return 1
	}
	return *in.Count
}

type HabitFilter struct {
	Search string
}
