package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

// PortfolioService serves work samples. Visitors only ever see published items.
type PortfolioService struct {
	Repo      repositories.PortfolioRepository
	DB        *sql.DB
	RequestID string
}

func (s PortfolioService) repo() repositories.PortfolioRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.PortfolioRepository{DB: pickDB(s.DB)}
}

func (s PortfolioService) List(ctx context.Context, f domain.ListFilter, admin bool) ([]models.PortfolioItem, error) {
	if !admin {
		f.Status = models.PortfolioPublished
	} else if f.Status != "" && !models.ValidPortfolioStatus(f.Status) {
		return nil, fieldError("status", "Invalid portfolio status")
	}
	if f.Limit > domain.MaxLimit {
		f.Limit = domain.MaxLimit
	}
	list, err := s.repo().List(ctx, f)
	if err != nil {
		return nil, wrapRepoErr("portfolio item", err)
	}
	return list, nil
}

func (s PortfolioService) ByCategory(ctx context.Context, category string, admin bool) ([]models.PortfolioItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fieldError("category", "Category is required")
	}
	return s.List(ctx, domain.ListFilter{Category: category}, admin)
}

func (s PortfolioService) Get(ctx context.Context, id int64, admin bool) (models.PortfolioItem, error) {
	if id <= 0 {
		return models.PortfolioItem{}, fieldError("id", "invalid id")
	}
	item, err := s.repo().Get(ctx, id)
	if err != nil {
		return item, wrapRepoErr("portfolio item", err)
	}
	if !admin && item.Status != models.PortfolioPublished {
		return models.PortfolioItem{}, domain.NotFoundError{Resource: "portfolio item"}
	}
	return item, nil
}

func normalizePortfolioInput(in models.PortfolioInput) models.PortfolioInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Client = strings.TrimSpace(in.Client)
	in.Location = strings.TrimSpace(in.Location)
	in.Date = strings.TrimSpace(in.Date)
	in.MediaURL = strings.TrimSpace(in.MediaURL)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = models.PortfolioPublished
	}
	in.Tags = models.SplitTags(strings.Join(in.Tags, ","))
	return in
}

func (s PortfolioService) Create(ctx context.Context, in models.PortfolioInput) (models.PortfolioItem, error) {
	in = normalizePortfolioInput(in)
	if err := validation.Validate(in); err != nil {
		return models.PortfolioItem{}, err
	}
	id, err := s.repo().Create(ctx, in)
	if err != nil {
		return models.PortfolioItem{}, wrapRepoErr("portfolio item", err)
	}
	utils.LogEvent(s.RequestID, "portfolio", "create", fmt.Sprintf("item_id=%d status=%s", id, in.Status))
	return s.Get(ctx, id, true)
}

func (s PortfolioService) Update(ctx context.Context, id int64, in models.PortfolioInput) (models.PortfolioItem, error) {
	if id <= 0 {
		return models.PortfolioItem{}, fieldError("id", "invalid id")
	}
	in = normalizePortfolioInput(in)
	if err := validation.Validate(in); err != nil {
		return models.PortfolioItem{}, err
	}
	if err := s.repo().Update(ctx, id, in); err != nil {
		return models.PortfolioItem{}, wrapRepoErr("portfolio item", err)
	}
	utils.LogEvent(s.RequestID, "portfolio", "update", fmt.Sprintf("item_id=%d", id))
	return s.Get(ctx, id, true)
}

func (s PortfolioService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fieldError("id", "invalid id")
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return wrapRepoErr("portfolio item", err)
	}
	utils.LogEvent(s.RequestID, "portfolio", "delete", fmt.Sprintf("item_id=%d", id))
	return nil
}
