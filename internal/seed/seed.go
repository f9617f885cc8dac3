// Package seed loads the YAML catalog (services, portfolio, site content)
// into empty tables.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Services  []models.ServiceInput   `yaml:"services"`
	Portfolio []models.PortfolioInput `yaml:"portfolio"`
	Content   *models.SiteContent     `yaml:"content"`
}

// Result counts what Apply inserted.
type Result struct {
	Services  int
	Portfolio int
	Content   bool
}

func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	for i, s := range c.Services {
		if err := validation.Validate(s); err != nil {
			return Catalog{}, fmt.Errorf("services[%d]: %w", i, err)
		}
	}
	for i, p := range c.Portfolio {
		if err := validation.Validate(p); err != nil {
			return Catalog{}, fmt.Errorf("portfolio[%d]: %w", i, err)
		}
	}
	if c.Content != nil {
		if err := validation.Validate(*c.Content); err != nil {
			return Catalog{}, fmt.Errorf("content: %w", err)
		}
	}
	return c, nil
}

// Load reads path, or the built-in catalog when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed catalog: %w", err)
	}
	return Parse(b)
}

// Apply inserts each section only when its table is still empty.
func Apply(ctx context.Context, db *sql.DB, c Catalog) (Result, error) {
	var res Result

	services := repositories.ServiceRepository{DB: db}
	n, err := services.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count services: %w", err)
	}
	if n == 0 {
		for _, s := range c.Services {
			if _, err := services.Create(ctx, s); err != nil {
				return res, fmt.Errorf("seed service %q: %w", s.Title, err)
			}
			res.Services++
		}
	}

	portfolio := repositories.PortfolioRepository{DB: db}
	n, err = portfolio.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count portfolio: %w", err)
	}
	if n == 0 {
		for _, p := range c.Portfolio {
			if p.Status == "" {
				p.Status = models.PortfolioPublished
			}
			if _, err := portfolio.Create(ctx, p); err != nil {
				return res, fmt.Errorf("seed portfolio %q: %w", p.Title, err)
			}
			res.Portfolio++
		}
	}

	if c.Content != nil {
		content := repositories.ContentRepository{DB: db}
		existing, _, err := content.All(ctx)
		if err != nil {
			return res, fmt.Errorf("read content: %w", err)
		}
		if len(existing) == 0 {
			if err := content.Upsert(ctx, c.Content.ToMap(), models.ContentKeys); err != nil {
				return res, fmt.Errorf("seed content: %w", err)
			}
			res.Content = true
		}
	}

	utils.LogEvent("", "seed", "apply", fmt.Sprintf("services=%d portfolio=%d content=%t", res.Services, res.Portfolio, res.Content))
	return res, nil
}
