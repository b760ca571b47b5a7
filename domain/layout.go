package domain

import "encoding/json"

// Dashboard card identifiers understood by the client.
const (
	CardSummary   = "summary"
	CardTasks     = "tasks"
	CardHabits    = "habits"
	CardGoals     = "goals"
	CardAnalytics = "analytics"
)

var knownCards = map[string]struct{}{
	CardSummary:   {},
	CardTasks:     {},
	CardHabits:    {},
	CardGoals:     {},
	CardAnalytics: {},
}

// DefaultLayout returns a fresh copy of the fallback card order.
func DefaultLayout() DashboardLayout {
	return DashboardLayout{Cards: []string{CardSummary, CardTasks, CardHabits, CardGoals, CardAnalytics}}
}

// DashboardLayout is the per-user card order of the dashboard.
type DashboardLayout struct {
	Cards []string `json:"cards"`
}

func (l DashboardLayout) Validate() error {
	var v Validator
	v.Check(l.Cards != nil, "cards", "required")
	seen := make(map[string]struct{}, len(l.Cards))
	for _, card := range l.Cards {
		if card == "" {
			v.Add("cards", "empty card identifier")
			continue
		}
		if _, ok := knownCards[card]; !ok {
			v.Add("cards", "unknown card "+card)
			continue
		}
		if _, dup := seen[card]; dup {
			v.Add("cards", "duplicate card "+card)
			continue
		}
		seen[card] = struct{}{}
	}
	return v.Err()
}

// Encode renders the layout as the JSON document stored per user.
func (l DashboardLayout) Encode() (string, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeLayout parses a stored document. ok is false when the document is corrupt
// or no longer valid, in which case the default layout is returned.
func DecodeLayout(raw string) (layout DashboardLayout, ok bool) {
	if err := json.Unmarshal([]byte(raw), &layout); err != nil {
		return DefaultLayout(), false
	}
	if layout.Validate() != nil {
		return DefaultLayout(), false
	}
	return layout, true
}
