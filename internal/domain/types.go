package domain

// ID is used across domain entities.
type ID int64

// ListFilter carries the search/filter/paging params the admin tables pass through.
type ListFilter struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

const (
	DefaultPublicLimit = 10
	DefaultAdminLimit  = 50
	MaxLimit           = 200
)

// ClampLimit applies the default when limit is unset and caps it at MaxLimit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (r RequestContext) IsAdmin() bool {
	return r.Role == RoleAdmin
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
