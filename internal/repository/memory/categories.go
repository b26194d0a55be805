package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

type categories struct{ s *Store }

func (v categories) List(ctx context.Context) ([]models.Category, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.Category, len(v.s.categories))
	copy(out, v.s.categories)
	return out, nil
}

func (v categories) Get(ctx context.Context, id string) (*models.Category, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.categories {
		if v.s.categories[i].ID == id {
			c := v.s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (v categories) GetByName(ctx context.Context, name string) (*models.Category, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.categories {
		if strings.EqualFold(v.s.categories[i].Name, name) {
			c := v.s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (v categories) Create(ctx context.Context, c *models.Category) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	v.s.categories = append(v.s.categories, *c)
	return nil
}

func (v categories) Update(ctx context.Context, c *models.Category) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.categories {
		if v.s.categories[i].ID == c.ID {
			v.s.categories[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

// Delete removes the category without checking for tickets that still
// reference it; a dangling ticket.CategoryID is tolerated by the
// enrichment path. See DESIGN.md.
func (v categories) Delete(ctx context.Context, id string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.categories {
		if v.s.categories[i].ID == id {
			v.s.categories = append(v.s.categories[:i], v.s.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
