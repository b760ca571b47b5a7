package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/fastygo/dashboard/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = r.s.stamp()
	r.s.users[user.ID] = *user
	return nil
}

// DeleteUser drops an account and everything it owns.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	delete(s.layouts, id)
	for key, rec := range s.tasks {
		if rec.value.UserID == id {
			delete(s.tasks, key)
		}
	}
	for key, rec := range s.habits {
		if rec.value.UserID == id {
			delete(s.habits, key)
		}
	}
	for key, log := range s.logs {
		if log.UserID == id {
			delete(s.logs, key)
		}
	}
	for key, rec := range s.goals {
		if rec.value.UserID == id {
			delete(s.goals, key)
		}
	}
}
