package service

import (
	"context"
	"fmt"
	"net/http"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

// SocialService talks to the two posting endpoints. Direct posting uses
// credentials held server-side upstream; OAuth posting requires the
// platform connection to already exist there.
type SocialService interface {
	PostDirect(ctx context.Context, req *transfer.PostRequest, idemKey string) (*transfer.PostResponse, error)
	PostOAuth(ctx context.Context, req *transfer.PostRequest, idemKey string) (*transfer.PostResponse, error)
	TestCredentials(ctx context.Context) (*transfer.CredentialReport, error)
}

type socialService struct {
	cfg    config.Config
	client *http.Client
}

func NewSocialService(cfg config.Config) SocialService {
	return &socialService{
		cfg:    cfg,
		client: http.DefaultClient,
	}
}

func (s *socialService) PostDirect(ctx context.Context, req *transfer.PostRequest, idemKey string) (*transfer.PostResponse, error) {
	return s.post(ctx, "/api/v1/direct-posts/immediate", req, idemKey)
}

func (s *socialService) PostOAuth(ctx context.Context, req *transfer.PostRequest, idemKey string) (*transfer.PostResponse, error) {
	return s.post(ctx, "/api/v1/oauth-posts/immediate", req, idemKey)
}

func (s *socialService) post(ctx context.Context, path string, req *transfer.PostRequest, idemKey string) (*transfer.PostResponse, error) {
	headers := map[string]string{}
	if idemKey != "" {
		headers["Idempotency-Key"] = idemKey
	}

	var out transfer.PostResponse
	if err := postJSON(ctx, s.client, s.cfg.APIBaseURL+path, req, &out, headers); err != nil {
		return nil, &PostingError{Endpoint: path, Err: err}
	}
	return &out, nil
}

func (s *socialService) TestCredentials(ctx context.Context) (*transfer.CredentialReport, error) {
	var out transfer.CredentialReport
	err := getJSON(ctx, s.client, s.cfg.APIBaseURL+"/api/v1/direct-posts/test-credentials", &out)
	if err != nil {
		return nil, fmt.Errorf("testing credentials: %w", err)
	}
	return &out, nil
}
