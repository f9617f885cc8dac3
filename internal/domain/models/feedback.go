package models

import "time"

const (
	FeedbackPending  = "pending"
	FeedbackApproved = "approved"
	FeedbackRejected = "rejected"
)

func ValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return true
	}
	return false
}

// Feedback is a customer rating/review awaiting moderation.
type Feedback struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Rating          int       `json:"rating"`
	Message         string    `json:"message"`
	ServiceCategory string    `json:"service_category"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type FeedbackInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,loose_email"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Message         string `json:"message" validate:"required"`
	ServiceCategory string `json:"service_category"`
}

type FeedbackStats struct {
	TotalFeedback int     `json:"total_feedback"`
	AverageRating float64 `json:"average_rating"`
	PendingCount  int     `json:"pending_count"`
	ApprovedCount int     `json:"approved_count"`
	RejectedCount int     `json:"rejected_count"`
}
