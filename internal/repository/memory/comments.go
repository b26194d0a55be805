package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek-kr07/quickdesk/internal/models"
)

type comments struct{ s *Store }

func (v comments) ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []models.Comment
	for _, c := range v.s.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (v comments) CountByTicket(ctx context.Context, ticketIDs []string) (map[string]int, error) {
	want := make(map[string]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		want[id] = true
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	counts := make(map[string]int, len(ticketIDs))
	for _, c := range v.s.comments {
		if want[c.TicketID] {
			counts[c.TicketID]++
		}
	}
	return counts, nil
}

func (v comments) Create(ctx context.Context, c *models.Comment) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.appendCommentLocked(c)
	return nil
}

func (s *Store) appendCommentLocked(c *models.Comment) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.comments = append(s.comments, *c)
}
