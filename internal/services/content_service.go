package services

import (
	"context"
	"database/sql"
	"strings"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

// ContentService edits the hero/about/contact blocks of the landing page.
type ContentService struct {
	Repo      repositories.ContentRepository
	DB        *sql.DB
	RequestID string
}

func (s ContentService) repo() repositories.ContentRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.ContentRepository{DB: pickDB(s.DB)}
}

// Get returns the stored blocks; missing keys come back empty.
func (s ContentService) Get(ctx context.Context) (models.SiteContent, error) {
	m, updated, err := s.repo().All(ctx)
	if err != nil {
		return models.SiteContent{}, wrapRepoErr("content", err)
	}
	c := models.ContentFromMap(m)
	c.UpdatedAt = updated
	return c, nil
}

func (s ContentService) Update(ctx context.Context, in models.SiteContent) (models.SiteContent, error) {
	in.HeroHeadline = strings.TrimSpace(in.HeroHeadline)
	in.HeroSubtitle = strings.TrimSpace(in.HeroSubtitle)
	in.AboutText = strings.TrimSpace(in.AboutText)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	if err := validation.Validate(in); err != nil {
		return models.SiteContent{}, err
	}
	if err := s.repo().Upsert(ctx, in.ToMap(), models.ContentKeys); err != nil {
		return models.SiteContent{}, wrapRepoErr("content", err)
	}
	utils.LogEvent(s.RequestID, "content", "update", "site content saved")
	return s.Get(ctx)
}
