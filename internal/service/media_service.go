package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/repository"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

var allowedMediaTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

// StagedFile is a locally staged upload: bytes in hand, nothing on the
// wire yet.
type StagedFile struct {
	ID          string
	Name        string
	ContentType string
	Data        []byte
}

// MediaStager tracks files pending upload and library assets already at
// their final URL. The finalized media list is uploaded-file URLs in
// staging order followed by library URLs.
type MediaStager struct {
	files  []*StagedFile
	assets []models.LibraryAsset
}

func NewMediaStager() *MediaStager {
	return &MediaStager{}
}

// Stage sniffs the file content and rejects anything outside the
// jpg/png/mp4/mov allowlist before it is accepted into the selection.
func (m *MediaStager) Stage(name string, data []byte) (*StagedFile, error) {
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}

	ft, err := filetype.Match(data)
	if err != nil || ft == types.Unknown {
		return nil, fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedMediaTypes[ft.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", ft.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	sf := &StagedFile{
		ID:          id,
		Name:        name,
		ContentType: ft.MIME.Value,
		Data:        data,
	}
	m.files = append(m.files, sf)
	return sf, nil
}

// SelectFromLibrary merges assets into the selection, skipping ids that
// are already selected.
func (m *MediaStager) SelectFromLibrary(assets []models.LibraryAsset) {
	seen := make(map[string]struct{}, len(m.assets))
	for _, a := range m.assets {
		seen[a.ID] = struct{}{}
	}
	for _, a := range assets {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		m.assets = append(m.assets, a)
	}
}

// Remove drops a staged file or library asset by id.
func (m *MediaStager) Remove(id string) {
	for i, f := range m.files {
		if f.ID == id {
			m.files = append(m.files[:i], m.files[i+1:]...)
			return
		}
	}
	for i, a := range m.assets {
		if a.ID == id {
			m.assets = append(m.assets[:i], m.assets[i+1:]...)
			return
		}
	}
}

func (m *MediaStager) Files() []*StagedFile {
	return m.files
}

func (m *MediaStager) Assets() []models.LibraryAsset {
	return m.assets
}

func (m *MediaStager) HasMedia() bool {
	return len(m.files) > 0 || len(m.assets) > 0
}

type MediaService interface {
	Finalize(ctx context.Context, postID string, stager *MediaStager) ([]string, error)
}

type mediaService struct {
	cfg     config.Config
	orphans repository.OrphanedUploadRepository
	client  *http.Client
}

func NewMediaService(cfg config.Config, orphans repository.OrphanedUploadRepository) MediaService {
	return &mediaService{
		cfg:     cfg,
		orphans: orphans,
		client:  http.DefaultClient,
	}
}

// Finalize uploads staged files one at a time: presign against the content
// API, raw PUT to storage, then the public URL is derived from the returned
// key. Library asset URLs are appended after the uploads. A failure aborts
// the whole batch; files already uploaded are not rolled back, only
// recorded for cleanup.
func (s *mediaService) Finalize(ctx context.Context, postID string, stager *MediaStager) ([]string, error) {
	urls := make([]string, 0, len(stager.Files())+len(stager.Assets()))
	var uploadedKeys []string

	for _, f := range stager.Files() {
		key, err := s.uploadFile(ctx, postID, f)
		if err != nil {
			s.recordOrphans(postID, uploadedKeys)
			return nil, &UploadError{Filename: f.Name, Err: err}
		}
		uploadedKeys = append(uploadedKeys, key)
		urls = append(urls, ObjectURL(s.cfg.S3.Bucket, s.cfg.S3.Region, key))
	}

	for _, a := range stager.Assets() {
		urls = append(urls, a.URL)
	}

	return urls, nil
}

func (s *mediaService) uploadFile(ctx context.Context, postID string, f *StagedFile) (string, error) {
	var presigned transfer.PresignResponse
	err := postJSON(ctx, s.client, s.cfg.APIBaseURL+"/content/media/presign-upload", &transfer.PresignRequest{
		PostID:   postID,
		Filename: f.Name,
		Filetype: f.ContentType,
	}, &presigned, nil)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presigned.URL, bytes.NewReader(f.Data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", f.ContentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("put: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("put: HTTP %d", resp.StatusCode)
	}

	return presigned.S3Key, nil
}

func (s *mediaService) recordOrphans(postID string, keys []string) {
	if len(keys) == 0 {
		return
	}
	for _, key := range keys {
		slog.Warn("orphaned upload", "post_id", postID, "s3_key", key)
		if s.orphans == nil {
			continue
		}
		if _, err := s.orphans.Create(context.Background(), &models.OrphanedUpload{PostID: postID, S3Key: key}); err != nil {
			slog.Info(err.Error())
		}
	}
}
