package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

// AIService wraps the upstream text and image generation endpoints. Both
// are opaque: prompt in, content out.
type AIService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*models.LibraryAsset, error)
}

type aiService struct {
	cfg    config.Config
	store  *S3Service
	client *http.Client
}

func NewAIService(cfg config.Config, store *S3Service) AIService {
	return &aiService{
		cfg:    cfg,
		store:  store,
		client: http.DefaultClient,
	}
}

func (s *aiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt cannot be empty")
	}

	var out transfer.GenerateTextResponse
	err := postJSON(ctx, s.client, s.cfg.APIBaseURL+"/ai/generate-text", &transfer.GeneratePromptRequest{Prompt: prompt}, &out, nil)
	if err != nil {
		return "", fmt.Errorf("generating text: %w", err)
	}
	return out.GeneratedText, nil
}

func (s *aiService) GenerateImage(ctx context.Context, prompt string) (*models.LibraryAsset, error) {
	if prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	var out transfer.GenerateImageResponse
	err := postJSON(ctx, s.client, s.cfg.APIBaseURL+"/ai/generate-image", &transfer.GeneratePromptRequest{Prompt: prompt}, &out, nil)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	// The endpoint has shipped three different names for the same field.
	imageURL := out.URL
	if imageURL == "" {
		imageURL = out.ImageURL
	}
	if imageURL == "" {
		imageURL = out.S3URL
	}
	if imageURL == "" {
		return nil, errors.New("image generation returned no URL")
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	mediaType := out.Type
	if mediaType == "" {
		mediaType = models.MediaTypeImage
	}

	// Generators hand back expiring URLs. Copy the object into our own
	// bucket so the asset survives in the library; keep the upstream URL
	// if the import fails.
	if imported, err := s.importAsset(ctx, id, imageURL); err != nil {
		slog.Warn("keeping upstream image URL", "error", err.Error())
	} else if imported != "" {
		imageURL = imported
	}

	return &models.LibraryAsset{
		ID:          id,
		URL:         imageURL,
		Type:        mediaType,
		Name:        out.Name,
		Description: out.Description,
		Prompt:      out.Prompt,
		AIGenerated: true,
	}, nil
}

// importAsset downloads the generated image and stores it under the ai/
// prefix. Returns "" when the URL already points at our bucket.
func (s *aiService) importAsset(ctx context.Context, id, imageURL string) (string, error) {
	if s.store == nil || s.cfg.S3.Bucket == "" {
		return "", nil
	}
	if strings.HasPrefix(imageURL, fmt.Sprintf("https://%s.s3", s.cfg.S3.Bucket)) {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching generated image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	ft, err := filetype.Match(data)
	if err != nil {
		return "", err
	}
	if ft == filetype.Unknown {
		return "", errors.New("unrecognized image payload")
	}

	key := fmt.Sprintf("ai/%s.%s", id, ft.Extension)
	if err := s.store.Upload(ctx, key, data, ft.MIME.Value); err != nil {
		return "", err
	}
	return s.store.PublicURL(key), nil
}
