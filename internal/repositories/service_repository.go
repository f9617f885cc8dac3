package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

const serviceColumns = `id, title, description, price, COALESCE(duration,''), COALESCE(category,''),
	COALESCE(image,''), features, created_at, updated_at`

func scanService(s scanner) (models.Service, error) {
	var (
		out      models.Service
		features sql.NullString
	)
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Price, &out.Duration,
		&out.Category, &out.Image, &features, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return out, err
	}
	out.Features = intdb.DecodeList(features)
	return out, nil
}

// List returns services newest first; Query matches title/description/category.
func (r ServiceRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Service, error) {
	clauses := []string{}
	args := []any{}
	if f.Query != "" {
		clauses = append(clauses, "(title LIKE ? OR description LIKE ? OR category LIKE ?)")
		like := likeArg(f.Query)
		args = append(args, like, like, like)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	limit, args := paginate(f, args)
	rows, err := pick(r.DB).QueryContext(ctx,
		"SELECT "+serviceColumns+" FROM services"+where(clauses)+" ORDER BY id DESC"+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r ServiceRepository) Get(ctx context.Context, id int64) (models.Service, error) {
	s, err := scanService(pick(r.DB).QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

func (r ServiceRepository) Create(ctx context.Context, in models.ServiceInput) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO services (title, description, price, duration, category, image, features)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, in.Price, intdb.NullIfEmpty(in.Duration), intdb.NullIfEmpty(in.Category),
		intdb.NullIfEmpty(in.Image), intdb.EncodeList(in.Features))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ServiceRepository) Update(ctx context.Context, id int64, in models.ServiceInput) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `
		UPDATE services
		SET title = ?, description = ?, price = ?, duration = ?, category = ?, image = ?, features = ?
		WHERE id = ?
	`, in.Title, in.Description, in.Price, intdb.NullIfEmpty(in.Duration), intdb.NullIfEmpty(in.Category),
		intdb.NullIfEmpty(in.Image), intdb.EncodeList(in.Features), id))
}

func (r ServiceRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id))
}

func (r ServiceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}
