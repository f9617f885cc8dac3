package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

const (
	catalogCacheKey = "services:all"
	catalogCacheTTL = 60 * time.Second
)

// CatalogService manages the services shown on the public site.
type CatalogService struct {
	Repo      repositories.ServiceRepository
	DB        *sql.DB
	Cache     Cache
	RequestID string
}

func (s CatalogService) repo() repositories.ServiceRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.ServiceRepository{DB: pickDB(s.DB)}
}

// List returns the full catalog, served from cache when available.
func (s CatalogService) List(ctx context.Context) ([]models.Service, error) {
	var cached []models.Service
	if s.Cache != nil {
		if ok, err := s.Cache.GetJSON(ctx, catalogCacheKey, &cached); err == nil && ok {
			return cached, nil
		} else if err != nil {
			utils.LogError(s.RequestID, "catalog", "cache_get", err)
		}
	}
	list, err := s.repo().List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, wrapRepoErr("service", err)
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, catalogCacheKey, list, catalogCacheTTL); err != nil {
			utils.LogError(s.RequestID, "catalog", "cache_set", err)
		}
	}
	return list, nil
}

func (s CatalogService) Search(ctx context.Context, q string) ([]models.Service, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.List(ctx)
	}
	list, err := s.repo().List(ctx, domain.ListFilter{Query: q})
	if err != nil {
		return nil, wrapRepoErr("service", err)
	}
	return list, nil
}

func (s CatalogService) ByCategory(ctx context.Context, category string) ([]models.Service, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fieldError("category", "Category is required")
	}
	list, err := s.repo().List(ctx, domain.ListFilter{Category: category})
	if err != nil {
		return nil, wrapRepoErr("service", err)
	}
	return list, nil
}

func (s CatalogService) Get(ctx context.Context, id int64) (models.Service, error) {
	if id <= 0 {
		return models.Service{}, fieldError("id", "invalid id")
	}
	svc, err := s.repo().Get(ctx, id)
	if err != nil {
		return svc, wrapRepoErr("service", err)
	}
	return svc, nil
}

func normalizeServiceInput(in models.ServiceInput) models.ServiceInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	in.Features = features
	return in
}

func (s CatalogService) Create(ctx context.Context, in models.ServiceInput) (models.Service, error) {
	in = normalizeServiceInput(in)
	if err := validation.Validate(in); err != nil {
		return models.Service{}, err
	}
	id, err := s.repo().Create(ctx, in)
	if err != nil {
		return models.Service{}, wrapRepoErr("service", err)
	}
	s.invalidate(ctx)
	utils.LogEvent(s.RequestID, "catalog", "create", fmt.Sprintf("service_id=%d title=%q", id, in.Title))
	return s.Get(ctx, id)
}

func (s CatalogService) Update(ctx context.Context, id int64, in models.ServiceInput) (models.Service, error) {
	if id <= 0 {
		return models.Service{}, fieldError("id", "invalid id")
	}
	in = normalizeServiceInput(in)
	if err := validation.Validate(in); err != nil {
		return models.Service{}, err
	}
	if err := s.repo().Update(ctx, id, in); err != nil {
		return models.Service{}, wrapRepoErr("service", err)
	}
	s.invalidate(ctx)
	utils.LogEvent(s.RequestID, "catalog", "update", fmt.Sprintf("service_id=%d", id))
	return s.Get(ctx, id)
}

func (s CatalogService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fieldError("id", "invalid id")
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return wrapRepoErr("service", err)
	}
	s.invalidate(ctx)
	utils.LogEvent(s.RequestID, "catalog", "delete", fmt.Sprintf("service_id=%d", id))
	return nil
}

func (s CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, catalogCacheKey); err != nil {
		utils.LogError(s.RequestID, "catalog", "cache_invalidate", err)
	}
}
