package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
)

// ContentService is the client for the upstream Content API, which owns
// the durable content records.
type ContentService interface {
	Create(ctx context.Context, rec *models.ContentRecord) (*models.ContentRecord, error)
	List(ctx context.Context, authorID string) ([]models.ContentRecord, error)
	Get(ctx context.Context, id string) (*models.ContentRecord, error)
	Update(ctx context.Context, id string, rec *models.ContentRecord) (*models.ContentRecord, error)
	Delete(ctx context.Context, id string) error
}

type contentService struct {
	cfg    config.Config
	client *http.Client
}

func NewContentService(cfg config.Config) ContentService {
	return &contentService{
		cfg:    cfg,
		client: http.DefaultClient,
	}
}

func (s *contentService) Create(ctx context.Context, rec *models.ContentRecord) (*models.ContentRecord, error) {
	var out models.ContentRecord
	if err := postJSON(ctx, s.client, s.cfg.APIBaseURL+"/content/", rec, &out, nil); err != nil {
		return nil, fmt.Errorf("creating content record: %w", err)
	}
	return &out, nil
}

func (s *contentService) List(ctx context.Context, authorID string) ([]models.ContentRecord, error) {
	endpoint := s.cfg.APIBaseURL + "/content/"
	if authorID != "" {
		endpoint += "?author_id=" + url.QueryEscape(authorID)
	}

	var out []models.ContentRecord
	if err := getJSON(ctx, s.client, endpoint, &out); err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	return out, nil
}

func (s *contentService) Get(ctx context.Context, id string) (*models.ContentRecord, error) {
	var out models.ContentRecord
	if err := getJSON(ctx, s.client, s.cfg.APIBaseURL+"/content/"+url.PathEscape(id), &out); err != nil {
		return nil, fmt.Errorf("getting content: %w", err)
	}
	return &out, nil
}

func (s *contentService) Update(ctx context.Context, id string, rec *models.ContentRecord) (*models.ContentRecord, error) {
	var out models.ContentRecord
	endpoint := s.cfg.APIBaseURL + "/content/" + url.PathEscape(id)
	if err := putJSON(ctx, s.client, endpoint, rec, &out); err != nil {
		return nil, fmt.Errorf("updating content: %w", err)
	}
	return &out, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := deleteJSON(ctx, s.client, s.cfg.APIBaseURL+"/content/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}
	return nil
}
