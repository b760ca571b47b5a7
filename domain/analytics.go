package domain

import "time"

// WeeklyDays is the number of calendar days covered by the weekly rollup.
const WeeklyDays = 7

// DayActivity is one day of the weekly rollup.
type DayActivity struct {
	Date       string `json:"date"`
	ISODate    string `json:"isoDate"`
	TasksDone  int    `json:"tasksDone"`
	HabitCount int    `json:"habitCount"`
}

type WeeklyAnalytics struct {
	Days []DayActivity `json:"days"`
}

// ActivityWindow is the half-open instant range [Start, End) plus the calendar
// days it spans, inclusive.
type ActivityWindow struct {
	Start    time.Time
	End      time.Time
	FirstDay time.Time
	LastDay  time.Time
}

// HabitLogCount is the part of a habit log the rollup needs.
type HabitLogCount struct {
	Date  time.Time
	Count int
}

// ActivitySnapshot holds the rows read inside one consistent snapshot.
type ActivitySnapshot struct {
	Completions []time.Time
	HabitLogs   []HabitLogCount
}
