package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
)

type ServicesAPI struct{ c *Client }

func (c *Client) Services() ServicesAPI { return ServicesAPI{c: c} }

func (a ServicesAPI) List(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	_, err := a.c.do(ctx, http.MethodGet, "/api/services", nil, &out)
	return out, err
}

func (a ServicesAPI) Search(ctx context.Context, q string) ([]models.Service, error) {
	var out []models.Service
	_, err := a.c.do(ctx, http.MethodGet, "/api/services/search?q="+url.QueryEscape(q), nil, &out)
	return out, err
}

func (a ServicesAPI) ByCategory(ctx context.Context, category string) ([]models.Service, error) {
	var out []models.Service
	_, err := a.c.do(ctx, http.MethodGet, "/api/services/category/"+url.PathEscape(category), nil, &out)
	return out, err
}

func (a ServicesAPI) Get(ctx context.Context, id int64) (models.Service, error) {
	var s models.Service
	_, err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/services/%d", id), nil, &s)
	return s, err
}

func (a ServicesAPI) Create(ctx context.Context, in models.ServiceInput) (models.Service, error) {
	var s models.Service
	_, err := a.c.do(ctx, http.MethodPost, "/api/services", in, &s)
	return s, err
}

func (a ServicesAPI) Update(ctx context.Context, id int64, in models.ServiceInput) (models.Service, error) {
	var s models.Service
	_, err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/services/%d", id), in, &s)
	return s, err
}

func (a ServicesAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/services/%d", id), nil, nil)
	return err
}

type PortfolioAPI struct{ c *Client }

func (c *Client) Portfolio() PortfolioAPI { return PortfolioAPI{c: c} }

func (a PortfolioAPI) List(ctx context.Context, f domain.ListFilter) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	_, err := a.c.do(ctx, http.MethodGet, "/api/portfolio"+filterQuery(f), nil, &out)
	return out, err
}

func (a PortfolioAPI) ByCategory(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	_, err := a.c.do(ctx, http.MethodGet, "/api/portfolio/category/"+url.PathEscape(category), nil, &out)
	return out, err
}

func (a PortfolioAPI) Get(ctx context.Context, id int64) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	_, err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/portfolio/%d", id), nil, &p)
	return p, err
}

func (a PortfolioAPI) Create(ctx context.Context, in models.PortfolioInput) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	_, err := a.c.do(ctx, http.MethodPost, "/api/portfolio", in, &p)
	return p, err
}

func (a PortfolioAPI) Update(ctx context.Context, id int64, in models.PortfolioInput) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	_, err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/portfolio/%d", id), in, &p)
	return p, err
}

func (a PortfolioAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/portfolio/%d", id), nil, nil)
	return err
}

type FeedbackAPI struct{ c *Client }

func (c *Client) Feedback() FeedbackAPI { return FeedbackAPI{c: c} }

func (a FeedbackAPI) Submit(ctx context.Context, in models.FeedbackInput) (models.Feedback, error) {
	var fb models.Feedback
	_, err := a.c.do(ctx, http.MethodPost, "/api/feedback", in, &fb)
	return fb, err
}

func (a FeedbackAPI) Approved(ctx context.Context, limit int) ([]models.Feedback, error) {
	var out []models.Feedback
	_, err := a.c.do(ctx, http.MethodGet, "/api/feedback/approved"+filterQuery(domain.ListFilter{Limit: limit}), nil, &out)
	return out, err
}

func (a FeedbackAPI) ByCategory(ctx context.Context, category string, limit int) ([]models.Feedback, error) {
	var out []models.Feedback
	path := "/api/feedback/category/" + url.PathEscape(category) + filterQuery(domain.ListFilter{Limit: limit})
	_, err := a.c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (a FeedbackAPI) Stats(ctx context.Context) (models.FeedbackStats, error) {
	var st models.FeedbackStats
	_, err := a.c.do(ctx, http.MethodGet, "/api/feedback/stats", nil, &st)
	return st, err
}

func (a FeedbackAPI) List(ctx context.Context, f domain.ListFilter) ([]models.Feedback, error) {
	var out []models.Feedback
	_, err := a.c.do(ctx, http.MethodGet, "/api/feedback"+filterQuery(f), nil, &out)
	return out, err
}

func (a FeedbackAPI) Get(ctx context.Context, id int64) (models.Feedback, error) {
	var fb models.Feedback
	_, err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/feedback/%d", id), nil, &fb)
	return fb, err
}

func (a FeedbackAPI) UpdateStatus(ctx context.Context, id int64, status string) (models.Feedback, error) {
	var fb models.Feedback
	_, err := a.c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/feedback/%d/status", id), map[string]string{"status": status}, &fb)
	return fb, err
}

func (a FeedbackAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/feedback/%d", id), nil, nil)
	return err
}

type ContentAPI struct{ c *Client }

func (c *Client) Content() ContentAPI { return ContentAPI{c: c} }

func (a ContentAPI) Get(ctx context.Context) (models.SiteContent, error) {
	var sc models.SiteContent
	_, err := a.c.do(ctx, http.MethodGet, "/api/content", nil, &sc)
	return sc, err
}

func (a ContentAPI) Update(ctx context.Context, in models.SiteContent) (models.SiteContent, error) {
	var sc models.SiteContent
	_, err := a.c.do(ctx, http.MethodPut, "/api/content", in, &sc)
	return sc, err
}
