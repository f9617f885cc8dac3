package repositories

import (
	"context"
	"database/sql"
	"errors"

	"cinecraft/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, password_hash, role, status, created_at, updated_at`

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(pick(r.DB).QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(pick(r.DB).QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (r UserRepository) Create(ctx context.Context, name, email, hash, role string) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES (?, ?, ?, ?, 'active')
	`, name, email, hash, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n)
	return n, err
}
