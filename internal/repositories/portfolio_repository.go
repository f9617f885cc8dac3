package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type PortfolioRepository struct {
	DB *sql.DB
}

const portfolioColumns = `id, title, description, COALESCE(category,''), COALESCE(client,''), COALESCE(location,''),
	COALESCE(DATE_FORMAT(project_date, '%Y-%m-%d'),''), tags, featured, status, COALESCE(media_url,''),
	created_at, updated_at`

func scanPortfolio(s scanner) (models.PortfolioItem, error) {
	var (
		out  models.PortfolioItem
		tags sql.NullString
	)
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Category, &out.Client, &out.Location,
		&out.Date, &tags, &out.Featured, &out.Status, &out.MediaURL, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return out, err
	}
	out.Tags = intdb.DecodeList(tags)
	return out, nil
}

// List orders featured items first. Status in the filter narrows to one status.
func (r PortfolioRepository) List(ctx context.Context, f domain.ListFilter) ([]models.PortfolioItem, error) {
	clauses := []string{}
	args := []any{}
	if f.Query != "" {
		clauses = append(clauses, "(title LIKE ? OR description LIKE ? OR client LIKE ? OR tags LIKE ?)")
		like := likeArg(f.Query)
		args = append(args, like, like, like, like)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	limit, args := paginate(f, args)
	rows, err := pick(r.DB).QueryContext(ctx,
		"SELECT "+portfolioColumns+" FROM portfolio_items"+where(clauses)+" ORDER BY featured DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r PortfolioRepository) Get(ctx context.Context, id int64) (models.PortfolioItem, error) {
	p, err := scanPortfolio(pick(r.DB).QueryRowContext(ctx,
		"SELECT "+portfolioColumns+" FROM portfolio_items WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (r PortfolioRepository) Create(ctx context.Context, in models.PortfolioInput) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO portfolio_items (title, description, category, client, location, project_date, tags, featured, status, media_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, intdb.NullIfEmpty(in.Category), intdb.NullIfEmpty(in.Client),
		intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.Date), intdb.EncodeList(in.Tags),
		in.Featured, in.Status, intdb.NullIfEmpty(in.MediaURL))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PortfolioRepository) Update(ctx context.Context, id int64, in models.PortfolioInput) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `
		UPDATE portfolio_items
		SET title = ?, description = ?, category = ?, client = ?, location = ?, project_date = ?,
			tags = ?, featured = ?, status = ?, media_url = ?
		WHERE id = ?
	`, in.Title, in.Description, intdb.NullIfEmpty(in.Category), intdb.NullIfEmpty(in.Client),
		intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.Date), intdb.EncodeList(in.Tags),
		in.Featured, in.Status, intdb.NullIfEmpty(in.MediaURL), id))
}

func (r PortfolioRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `DELETE FROM portfolio_items WHERE id = ?`, id))
}

func (r PortfolioRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolio_items`).Scan(&n)
	return n, err
}
