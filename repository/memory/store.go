// Package memory is an in-process storage driver. All repositories built from one
// Store share a single lock, so multi-entity reads see one consistent state.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type record[T any] struct {
	value T
	seq   uint64
}

// Store holds every entity of the dashboard in maps guarded by one RWMutex.
type Store struct {
	mu  sync.RWMutex
	seq uint64
	now func() time.Time

	users    map[string]domain.User
	tasks    map[string]record[domain.Task]
	habits   map[string]record[domain.Habit]
	logs     map[string]domain.HabitLog
	goals    map[string]record[domain.Goal]
	layouts  map[string]string
	sessions map[string]domain.Session
}

type Option func(*Store)

// WithClock overrides the clock used for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		users:    make(map[string]domain.User),
		tasks:    make(map[string]record[domain.Task]),
		habits:   make(map[string]record[domain.Habit]),
		logs:     make(map[string]domain.HabitLog),
		goals:    make(map[string]record[domain.Goal]),
		layouts:  make(map[string]string),
		sessions: make(map[string]domain.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() repository.UserRepository { return &userRepository{s} }
func (s *Store) Tasks() repository.TaskRepository { return &taskRepository{s} }
func (s *Store) Habits() repository.HabitRepository { return &habitRepository{s} }
func (s *Store) Goals() repository.GoalRepository { return &goalRepository{s} }
func (s *Store) Layouts() repository.LayoutRepository { return &layoutRepository{s} }
func (s *Store) Analytics() repository.AnalyticsRepository { return &analyticsRepository{s} }
func (s *Store) Sessions() repository.SessionRepository { return &sessionRepository{s} }

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// paginate orders records newest first by the supplied key, falling back to
// insertion order, and cuts out the requested page.
func paginate[T any](records []record[T], key func(T) time.Time, page domain.PageRequest) ([]T, int) {
	sort.Slice(records, func(i, j int) bool {
		ki, kj := key(records[i].value), key(records[j].value)
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return records[i].seq > records[j].seq
	})

	total := len(records)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}

	items := make([]T, 0, end-start)
	for _, rec := range records[start:end] {
		items = append(items, rec.value)
	}
	return items, total
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
