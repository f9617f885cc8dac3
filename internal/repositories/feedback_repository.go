package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type FeedbackRepository struct {
	DB *sql.DB
}

const feedbackColumns = `id, name, email, rating, message, COALESCE(service_category,''), status, created_at`

func scanFeedback(s scanner) (models.Feedback, error) {
	var out models.Feedback
	err := s.Scan(&out.ID, &out.Name, &out.Email, &out.Rating, &out.Message, &out.ServiceCategory,
		&out.Status, &out.CreatedAt)
	return out, err
}

// List returns feedback newest first, filtered by status/category when set.
func (r FeedbackRepository) List(ctx context.Context, f domain.ListFilter) ([]models.Feedback, error) {
	clauses := []string{}
	args := []any{}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		clauses = append(clauses, "service_category = ?")
		args = append(args, f.Category)
	}
	if f.Query != "" {
		clauses = append(clauses, "(name LIKE ? OR email LIKE ? OR message LIKE ?)")
		like := likeArg(f.Query)
		args = append(args, like, like, like)
	}
	limit, args := paginate(f, args)
	rows, err := pick(r.DB).QueryContext(ctx,
		"SELECT "+feedbackColumns+" FROM feedback"+where(clauses)+" ORDER BY created_at DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}

func (r FeedbackRepository) Get(ctx context.Context, id int64) (models.Feedback, error) {
	fb, err := scanFeedback(pick(r.DB).QueryRowContext(ctx,
		"SELECT "+feedbackColumns+" FROM feedback WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return fb, ErrNotFound
	}
	return fb, err
}

func (r FeedbackRepository) Create(ctx context.Context, in models.FeedbackInput, status string) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO feedback (name, email, rating, message, service_category, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.Name, in.Email, in.Rating, in.Message, intdb.NullIfEmpty(in.ServiceCategory), status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FeedbackRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `UPDATE feedback SET status = ? WHERE id = ?`, status, id))
}

func (r FeedbackRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(pick(r.DB).ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id))
}

func (r FeedbackRepository) Stats(ctx context.Context) (models.FeedbackStats, error) {
	var s models.FeedbackStats
	err := pick(r.DB).QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(rating), 0),
			COALESCE(SUM(status = 'pending'), 0),
			COALESCE(SUM(status = 'approved'), 0),
			COALESCE(SUM(status = 'rejected'), 0)
		FROM feedback
	`).Scan(&s.TotalFeedback, &s.AverageRating, &s.PendingCount, &s.ApprovedCount, &s.RejectedCount)
	return s, err
}
