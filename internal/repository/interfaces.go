package repository

import (
	"context"

	"github.com/abhishek-kr07/quickdesk/internal/models"
)

// Stores return (nil, nil) for lookups that miss; callers decide
// whether absence is an error.

// Stores bundles one implementation of each entity store.
type Stores struct {
	Tickets    TicketStore
	Comments   CommentStore
	Users      UserStore
	Categories CategoryStore
}

type TicketStore interface {
	// List returns one page of tickets matching f plus the total match
	// count before pagination. Ordering is stable: ties keep insertion
	// order.
	List(ctx context.Context, f TicketFilter, p TicketPage) ([]models.Ticket, int, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	// Update persists t and, when audit is non-nil, appends the audit
	// comment in the same transaction so a status change can never
	// land without its trail entry.
	Update(ctx context.Context, t *models.Ticket, audit *models.Comment) error
}

type CommentStore interface {
	ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error)
	CountByTicket(ctx context.Context, ticketIDs []string) (map[string]int, error)
	Create(ctx context.Context, c *models.Comment) error
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) (bool, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) (bool, error)
}
