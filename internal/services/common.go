package services

import (
	"database/sql"
	"errors"

	intconfig "cinecraft/internal/config"
	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/repositories"
	"cinecraft/internal/validation"
)

func pickDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// wrapRepoErr turns repository failures into domain errors for resource.
func wrapRepoErr(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError{Resource: resource, Err: err}
	case intdb.IsDuplicateKey(err):
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	}
	return domain.InternalError{Err: err}
}

// allowPastDate drops the past-date complaint, keeping other field errors.
// Admin edits of historic bookings must still save.
func allowPastDate(err error) error {
	var ve domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields["date"] != validation.MsgPastDate {
		return err
	}
	fields := make(map[string]string, len(ve.Fields))
	for k, v := range ve.Fields {
		if k != "date" {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return domain.ValidationError{Fields: fields, Err: ve.Err}
}

func fieldError(field, msg string) error {
	return domain.ValidationError{Field: field, Msg: msg, Fields: map[string]string{field: msg}}
}
