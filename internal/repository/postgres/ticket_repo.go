package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

const ticketCols = `
	t.id, t.subject, t.description, t.category_id, t.user_id,
	COALESCE(t.assigned_to, ''), t.status, t.priority, t.attachments,
	t.created_at, t.updated_at`

// List returns one page plus the total match count for the same filter
// set (for pagination).
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter, p repository.TicketPage) ([]models.Ticket, int, error) {
	whereSQL, args := buildTicketWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol := sanitizeSort(p.SortBy)
	sortOrd := sanitizeOrder(p.SortOrder)

	// secondary keys keep the order stable across equal sort values
	sql := fmt.Sprintf(`
		SELECT %s
		FROM tickets t
		%s
		ORDER BY t.%s %s, t.created_at ASC, t.id ASC
		LIMIT $%d OFFSET $%d
	`, ticketCols, whereSQL, sortCol, sortOrd, len(args)+1, len(args)+2)

	args = append(args, p.Limit, p.Offset())

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	row := r.db.QueryRow(ctx, `SELECT `+ticketCols+` FROM tickets t WHERE t.id = $1`, id)
	if err := scanTicket(row, &t); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	now := time.Now()
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO tickets (subject, description, category_id, user_id, assigned_to, status, priority, attachments, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at
	`,
		t.Subject, t.Description, t.CategoryID, t.UserID, nullIfEmpty(t.AssignedTo),
		t.Status, t.Priority, t.Attachments, now, now,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update writes the ticket and, when audit is non-nil, the audit
// comment inside one transaction. The single-row UPDATE takes the row
// lock, so concurrent writers to the same id serialize.
func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket, audit *models.Comment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE tickets SET
			status=$1, priority=$2, assigned_to=$3, updated_at=$4
		WHERE id=$5
	`, t.Status, t.Priority, nullIfEmpty(t.AssignedTo), t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if audit != nil {
		err = tx.QueryRow(ctx, `
			INSERT INTO comments (ticket_id, user_id, content, is_status_change, created_at)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, audit.TicketID, audit.UserID, audit.Content, audit.IsStatusChange, audit.CreatedAt).Scan(&audit.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func scanTicket(row pgx.Row, t *models.Ticket) error {
	return row.Scan(
		&t.ID, &t.Subject, &t.Description, &t.CategoryID, &t.UserID,
		&t.AssignedTo, &t.Status, &t.Priority, &t.Attachments,
		&t.CreatedAt, &t.UpdatedAt,
	)
}

// buildTicketWhere composes WHERE clause and args. Scope clauses come
// first and are never optional for scoped callers.
func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	add := func(cond string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(cond, len(args)))
	}

	// scope stage
	if f.OwnerID != "" {
		add("t.user_id = $%d", f.OwnerID)
	}
	if f.AssigneeID != "" {
		add("t.assigned_to = $%d", f.AssigneeID)
	}

	// filter stage
	if f.Status != "" {
		add("t.status = $%d", f.Status)
	}
	if f.CategoryID != "" {
		add("t.category_id = $%d", f.CategoryID)
	}
	if f.Priority != "" {
		add("t.priority = $%d", f.Priority)
	}
	if f.AssignedTo != "" {
		if f.AssignedTo == repository.Unassigned {
			clauses = append(clauses, "t.assigned_to IS NULL")
		} else {
			add("t.assigned_to = $%d", f.AssignedTo)
		}
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func sanitizeSort(s string) string {
	switch s {
	case "updatedAt":
		return "updated_at"
	case "priority":
		return "priority"
	case "status":
		return "status"
	default:
		return "created_at"
	}
}

func sanitizeOrder(o string) string {
	if strings.EqualFold(o, "asc") {
		return "ASC"
	}
	return "DESC"
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
