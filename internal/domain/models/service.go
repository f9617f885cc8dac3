package models

import (
	"strings"
	"time"
)

// Service is a bookable offering shown on the public site.
type Service struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceInput struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description" validate:"required"`
	Price       float64  `json:"price" yaml:"price" validate:"gte=0"`
	Duration    string   `json:"duration" yaml:"duration"`
	Category    string   `json:"category" yaml:"category"`
	Image       string   `json:"image" yaml:"image"`
	Features    []string `json:"features" yaml:"features"`
}

// serviceSlugIDs maps the booking form's service slugs to catalog IDs.
var serviceSlugIDs = map[string]int64{
	"photography":      1,
	"videography":      2,
	"vfx":              3,
	"graphic-design":   1,
	"cinematography":   2,
	"commercial-drone": 2,
	"fpv-drones":       2,
	"post-production":  3,
	"broadcasting":     2,
}

// ServiceIDForSlug resolves a legacy service slug; ok is false when unknown.
func ServiceIDForSlug(slug string) (int64, bool) {
	id, ok := serviceSlugIDs[strings.ToLower(strings.TrimSpace(slug))]
	return id, ok
}
