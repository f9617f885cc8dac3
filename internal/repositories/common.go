package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "cinecraft/internal/config"
	"cinecraft/internal/domain"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("record not found")

type scanner interface {
	Scan(dest ...any) error
}

func pick(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// likeArg wraps q for a substring LIKE match, escaping wildcards.
func likeArg(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

// where joins clauses with AND, returning "" when empty.
func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func paginate(f domain.ListFilter, args []any) (string, []any) {
	if f.Limit <= 0 {
		return "", args
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	return " LIMIT ? OFFSET ?", append(args, f.Limit, offset)
}

func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
