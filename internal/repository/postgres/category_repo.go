package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

type CategoryRepo struct{ db *pgxpool.Pool }

func NewCategoryRepo(db *pgxpool.Pool) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, description, color, created_at`

func scanCategory(row pgx.Row, c *models.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt)
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryCols+` FROM categories ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Get(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE id=$1`, id), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE LOWER(name)=LOWER($1)`, name), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description, color)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, c.Name, c.Description, c.Color).Scan(&c.ID, &c.CreatedAt)
}

func (r *CategoryRepo) Update(ctx context.Context, c *models.Category) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name=$1, description=$2, color=$3
		WHERE id=$4
	`, c.Name, c.Description, c.Color, c.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete has no referential guard: tickets keep their category_id even
// when it no longer resolves. See DESIGN.md.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
