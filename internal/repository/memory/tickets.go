package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

type tickets struct{ s *Store }

func (v tickets) List(ctx context.Context, f repository.TicketFilter, p repository.TicketPage) ([]models.Ticket, int, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	matches := make([]models.Ticket, 0, len(v.s.tickets))
	for _, t := range v.s.tickets {
		if matchTicket(t, f) {
			matches = append(matches, t)
		}
	}

	sortTickets(matches, p.SortBy, p.SortOrder)

	total := len(matches)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func matchTicket(t models.Ticket, f repository.TicketFilter) bool {
	// scope stage
	if f.OwnerID != "" && t.UserID != f.OwnerID {
		return false
	}
	if f.AssigneeID != "" && t.AssignedTo != f.AssigneeID {
		return false
	}
	// filter stage
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.AssignedTo != "" {
		if f.AssignedTo == repository.Unassigned {
			if t.AssignedTo != "" {
				return false
			}
		} else if t.AssignedTo != f.AssignedTo {
			return false
		}
	}
	return true
}

// sortTickets orders in place. Dates compare chronologically, the enum
// fields compare as plain strings; SliceStable keeps insertion order on
// ties.
func sortTickets(ts []models.Ticket, sortBy, order string) {
	less := func(a, b models.Ticket) bool {
		switch sortBy {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "priority":
			return a.Priority < b.Priority
		case "status":
			return a.Status < b.Status
		default: // createdAt
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(ts, func(i, j int) bool {
		if order == "asc" {
			return less(ts[i], ts[j])
		}
		return less(ts[j], ts[i])
	})
}

func (v tickets) Get(ctx context.Context, id string) (*models.Ticket, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.tickets {
		if v.s.tickets[i].ID == id {
			t := v.s.tickets[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (v tickets) Create(ctx context.Context, t *models.Ticket) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	v.s.tickets = append(v.s.tickets, *t)
	return nil
}

func (v tickets) Update(ctx context.Context, t *models.Ticket, audit *models.Comment) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.tickets {
		if v.s.tickets[i].ID == t.ID {
			v.s.tickets[i] = *t
			if audit != nil {
				v.s.appendCommentLocked(audit)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}
