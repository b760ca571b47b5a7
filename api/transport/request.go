package transport

import (
	"strings"
	"time"

	"github.com/fastygo/dashboard/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Registration() domain.Registration {
	return domain.Registration{Name: r.Name, Email: r.Email, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Credentials() domain.Credentials {
	return domain.Credentials{Email: r.Email, Password: r.Password}
}

type TaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// Input parses wire values (dates) and validates the result.
func (r TaskRequest) Input() (domain.TaskInput, error) {
	in := domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
	}

	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) != "" {
		due, err := time.Parse(time.RFC3339, strings.TrimSpace(*r.DueDate))
		if err != nil {
			return in, invalidField("dueDate", "must be an RFC3339 timestamp")
		}
		in.DueDate = &due
	}
	return in, in.Validate()
}

type HabitRequest struct {
	Name          string `json:"name"`
	Frequency     string `json:"frequency"`
	TargetPerWeek *int   `json:"targetPerWeek"`
}

func (r HabitRequest) Input() (domain.HabitInput, error) {
	in := domain.HabitInput{
		Name:          r.Name,
		Frequency:     domain.HabitFrequency(r.Frequency),
		TargetPerWeek: r.TargetPerWeek,
	}
	return in, in.Validate()
}

type HabitLogRequest struct {
	Date  string `json:"date"`
	Count *int   `json:"count"`
}

func (r HabitLogRequest) Input() (domain.HabitLogInput, error) {
	in := domain.HabitLogInput{Count: r.Count}
	day, ok := domain.ParseDay(r.Date)
	if !ok {
		return in, invalidField("date", "must be an RFC3339 timestamp or YYYY-MM-DD")
	}
	in.Date = day
	return in, in.Validate()
}

type GoalRequest struct {
	Title        string `json:"title"`
	TargetValue  int    `json:"targetValue"`
	CurrentValue *int   `json:"currentValue"`
	Unit         string `json:"unit"`
	WeekStart    string `json:"weekStart"`
	Status       string `json:"status"`
}

func (r GoalRequest) Input() (domain.GoalInput, error) {
	in := domain.GoalInput{
		Title:       r.Title,
		TargetValue: r.TargetValue,
		Unit:        r.Unit,
		Status:      domain.GoalStatus(r.Status),
	}
	if r.CurrentValue != nil {
		in.CurrentValue = *r.CurrentValue
	}
	weekStart, ok := domain.ParseDay(r.WeekStart)
	if !ok {
		return in, invalidField("weekStart", "must be an RFC3339 timestamp or YYYY-MM-DD")
	}
	in.WeekStart = weekStart
	return in, in.Validate()
}

type LayoutRequest struct {
	Cards []string `json:"cards"`
}

func (r LayoutRequest) Layout() domain.DashboardLayout {
	return domain.DashboardLayout{Cards: r.Cards}
}

func invalidField(field, message string) error {
	var v domain.Validator
	v.Add(field, message)
	return v.Err()
}
