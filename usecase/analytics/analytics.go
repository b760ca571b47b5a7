package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
	"github.com/fastygo/dashboard/usecase"
)

// DayLabelLayout formats the human-readable day label (day/month).
const DayLabelLayout = "02/01"

type UseCase struct {
	repo     repository.AnalyticsRepository
	clock    usecase.Clock
	location *time.Location
	logger   *zap.Logger
}

// New builds the weekly aggregator. Calendar days are cut in location; nil means time.Local.
func New(repo repository.AnalyticsRepository, clock usecase.Clock, location *time.Location, logger *zap.Logger) *UseCase {
	if clock == nil {
		clock = usecase.SystemClock
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		repo:     repo,
		clock:    clock,
		location: location,
		logger:   logger,
	}
}

// Window returns the seven calendar days ending today, in the aggregator's location.
func (uc *UseCase) Window() domain.ActivityWindow {
	now := uc.clock().In(uc.location)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	start := today.AddDate(0, 0, -(domain.WeeklyDays - 1))

	return domain.ActivityWindow{
		Start:    start,
		End:      today.AddDate(0, 0, 1),
		FirstDay: domain.CalendarDay(start),
		LastDay:  domain.CalendarDay(today),
	}
}

// Weekly recomputes the rollup from source rows on every call.
func (uc *UseCase) Weekly(ctx context.Context, userID string) (*domain.WeeklyAnalytics, error) {
	window := uc.Window()
	snapshot, err := uc.repo.Snapshot(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return Aggregate(window, snapshot, uc.location), nil
}

// Aggregate buckets completions (one per task) and habit log counts (summed)
// into exactly domain.WeeklyDays entries, oldest first. Empty days are zero.
func Aggregate(window domain.ActivityWindow, snapshot *domain.ActivitySnapshot, location *time.Location) *domain.WeeklyAnalytics {
	tasksByDay := make(map[string]int)
	habitsByDay := make(map[string]int)

	if snapshot != nil {
		for _, completedAt := range snapshot.Completions {
			tasksByDay[completedAt.In(location).Format(time.DateOnly)]++
		}
		// Log dates are calendar days already; formatting in UTC keeps them unshifted.
		for _, log := range snapshot.HabitLogs {
			habitsByDay[log.Date.UTC().Format(time.DateOnly)] += log.Count
		}
	}

	days := make([]domain.DayActivity, 0, domain.WeeklyDays)
	for i := 0; i < domain.WeeklyDays; i++ {
		day := window.Start.AddDate(0, 0, i)
		key := day.Format(time.DateOnly)
		days = append(days, domain.DayActivity{
			Date:       day.Format(DayLabelLayout),
			ISODate:    key,
			TasksDone:  tasksByDay[key],
			HabitCount: habitsByDay[key],
		})
	}
	return &domain.WeeklyAnalytics{Days: days}
}
