package models

import "time"

const (
	PortfolioPublished = "published"
	PortfolioDraft     = "draft"
	PortfolioPrivate   = "private"
)

func ValidPortfolioStatus(s string) bool {
	switch s {
	case PortfolioPublished, PortfolioDraft, PortfolioPrivate:
		return true
	}
	return false
}

// PortfolioItem is a work sample; only published items reach visitors.
type PortfolioItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Client      string    `json:"client,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        string    `json:"date,omitempty"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`
	MediaURL    string    `json:"media_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PortfolioInput accepts tags either as a JSON list or a comma-separated string.
type PortfolioInput struct {
	Title       string  `json:"title" yaml:"title" validate:"required"`
	Description string  `json:"description" yaml:"description" validate:"required"`
	Category    string  `json:"category" yaml:"category"`
	Client      string  `json:"client" yaml:"client"`
	Location    string  `json:"location" yaml:"location"`
	Date        string  `json:"date" yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	Tags        TagList `json:"tags" yaml:"tags"`
	Featured    bool    `json:"featured" yaml:"featured"`
	Status      string  `json:"status" yaml:"status" validate:"omitempty,oneof=published draft private"`
	MediaURL    string  `json:"media_url" yaml:"media_url"`
}
