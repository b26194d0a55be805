package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhishek-kr07/quickdesk/internal/models"
)

type CommentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, ticket_id, user_id, content, is_status_change, created_at
		FROM comments
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.UserID, &c.Content, &c.IsStatusChange, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepo) CountByTicket(ctx context.Context, ticketIDs []string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ticket_id, COUNT(*)
		FROM comments
		WHERE ticket_id = ANY($1)
		GROUP BY ticket_id
	`, ticketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, len(ticketIDs))
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO comments (ticket_id, user_id, content, is_status_change)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`, c.TicketID, c.UserID, c.Content, c.IsStatusChange).Scan(&c.ID, &c.CreatedAt)
}
