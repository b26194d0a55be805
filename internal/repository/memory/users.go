package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

type users struct{ s *Store }

func (v users) List(ctx context.Context) ([]models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.User, len(v.s.users))
	copy(out, v.s.users)
	return out, nil
}

func (v users) Get(ctx context.Context, id string) (*models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.users {
		if v.s.users[i].ID == id {
			u := v.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (v users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.users {
		if strings.EqualFold(v.s.users[i].Email, email) {
			u := v.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (v users) Create(ctx context.Context, u *models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	v.s.users = append(v.s.users, *u)
	return nil
}

func (v users) Update(ctx context.Context, u *models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.users {
		if v.s.users[i].ID == u.ID {
			u.UpdatedAt = time.Now()
			v.s.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (v users) Delete(ctx context.Context, id string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.users {
		if v.s.users[i].ID == id {
			v.s.users = append(v.s.users[:i], v.s.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
