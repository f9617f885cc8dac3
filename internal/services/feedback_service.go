package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/metrics"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

// FeedbackCategories are the service categories offered by the feedback form.
var FeedbackCategories = []string{"photography", "videography", "cinematography", "drone-services", "vfx-post", "commercial"}

type FeedbackService struct {
	Repo      repositories.FeedbackRepository
	DB        *sql.DB
	RequestID string
}

func (s FeedbackService) repo() repositories.FeedbackRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.FeedbackRepository{DB: pickDB(s.DB)}
}

// Create stores a testimonial awaiting moderation.
func (s FeedbackService) Create(ctx context.Context, in models.FeedbackInput) (models.Feedback, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	in.ServiceCategory = strings.ToLower(strings.TrimSpace(in.ServiceCategory))
	if err := validation.Validate(in); err != nil {
		return models.Feedback{}, err
	}
	id, err := s.repo().Create(ctx, in, models.FeedbackPending)
	if err != nil {
		return models.Feedback{}, wrapRepoErr("feedback", err)
	}
	metrics.FeedbackSubmitted.Inc()
	utils.LogEvent(s.RequestID, "feedback", "create", fmt.Sprintf("feedback_id=%d rating=%d", id, in.Rating))
	return s.Get(ctx, id)
}

// Approved returns moderated testimonials for the public site.
func (s FeedbackService) Approved(ctx context.Context, limit int) ([]models.Feedback, error) {
	return s.list(ctx, domain.ListFilter{
		Status: models.FeedbackApproved,
		Limit:  domain.ClampLimit(limit, domain.DefaultPublicLimit),
	})
}

func (s FeedbackService) ByCategory(ctx context.Context, category string, limit int) ([]models.Feedback, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, fieldError("category", "Category is required")
	}
	return s.list(ctx, domain.ListFilter{
		Status:   models.FeedbackApproved,
		Category: category,
		Limit:    domain.ClampLimit(limit, domain.DefaultPublicLimit),
	})
}

// List is the admin moderation table.
func (s FeedbackService) List(ctx context.Context, f domain.ListFilter) ([]models.Feedback, error) {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	if f.Status != "" && !models.ValidFeedbackStatus(f.Status) {
		return nil, fieldError("status", "Invalid feedback status")
	}
	f.Limit = domain.ClampLimit(f.Limit, domain.DefaultAdminLimit)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.list(ctx, f)
}

func (s FeedbackService) list(ctx context.Context, f domain.ListFilter) ([]models.Feedback, error) {
	list, err := s.repo().List(ctx, f)
	if err != nil {
		return nil, wrapRepoErr("feedback", err)
	}
	return list, nil
}

func (s FeedbackService) Get(ctx context.Context, id int64) (models.Feedback, error) {
	if id <= 0 {
		return models.Feedback{}, fieldError("id", "invalid id")
	}
	fb, err := s.repo().Get(ctx, id)
	if err != nil {
		return fb, wrapRepoErr("feedback", err)
	}
	return fb, nil
}

func (s FeedbackService) Stats(ctx context.Context) (models.FeedbackStats, error) {
	st, err := s.repo().Stats(ctx)
	if err != nil {
		return st, wrapRepoErr("feedback", err)
	}
	return st, nil
}

func (s FeedbackService) UpdateStatus(ctx context.Context, id int64, status string) (models.Feedback, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidFeedbackStatus(status) {
		return models.Feedback{}, fieldError("status", "Invalid feedback status")
	}
	if id <= 0 {
		return models.Feedback{}, fieldError("id", "invalid id")
	}
	if err := s.repo().UpdateStatus(ctx, id, status); err != nil {
		return models.Feedback{}, wrapRepoErr("feedback", err)
	}
	utils.LogEvent(s.RequestID, "feedback", "update_status", fmt.Sprintf("feedback_id=%d status=%s", id, status))
	return s.Get(ctx, id)
}

func (s FeedbackService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fieldError("id", "invalid id")
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return wrapRepoErr("feedback", err)
	}
	utils.LogEvent(s.RequestID, "feedback", "delete", fmt.Sprintf("feedback_id=%d", id))
	return nil
}
