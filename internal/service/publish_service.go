package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/repository"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
)

// RunState is where a publish or schedule run ended up.
type RunState string

const (
	StateConnectRequired RunState = "connect_required"
	StateSucceeded       RunState = "succeeded"
	StatePartialFailure  RunState = "partial_failure"
	StateFailed          RunState = "failed"
	StateScheduled       RunState = "scheduled"
)

type PublishOutcome struct {
	State     RunState                  `json:"state"`
	Message   string                    `json:"message,omitempty"`
	Results   []transfer.PlatformResult `json:"results,omitempty"`
	OAuthURL  string                    `json:"oauth_url,omitempty"`
	MediaURLs []string                  `json:"media_urls,omitempty"`
	Record    *models.ContentRecord     `json:"record,omitempty"`
}

type PublishService interface {
	Publish(ctx context.Context, wf *Workflow, confirmConnect bool) (*PublishOutcome, error)
}

type publishService struct {
	cfg     config.Config
	media   MediaService
	social  SocialService
	conns   ConnectionService
	content ContentService
	history repository.PublishHistoryRepository
}

func NewPublishService(
	cfg config.Config,
	media MediaService,
	social SocialService,
	conns ConnectionService,
	content ContentService,
	history repository.PublishHistoryRepository) PublishService {
	return &publishService{
		cfg:     cfg,
		media:   media,
		social:  social,
		conns:   conns,
		content: content,
		history: history,
	}
}

// Publish runs the immediate-posting workflow: validate, upload staged
// media, post per strategy group, then best-effort bookkeeping. No posting
// call happens until every upload has resolved.
func (s *publishService) Publish(ctx context.Context, wf *Workflow, confirmConnect bool) (*PublishOutcome, error) {
	if err := wf.Begin(); err != nil {
		return nil, err
	}
	defer wf.Settle()

	if err := s.validate(wf); err != nil {
		return nil, err
	}

	// LinkedIn can only post through a live connection of this user.
	// Declining the connect offer is a rejection; the selection is never
	// silently narrowed.
	if wf.Connectors.Contains(ConnectorLinkedIn) {
		connected, err := s.conns.Connected(ctx, wf.UserID, ConnectorLinkedIn)
		if err != nil {
			return nil, err
		}
		if !connected {
			if !confirmConnect {
				return nil, &ValidationError{Reason: "LinkedIn is selected but not connected. Connect your LinkedIn account or deselect it."}
			}
			oauthURL, err := s.conns.Connect(ctx, ConnectorLinkedIn, wf.UserID)
			if err != nil {
				return nil, err
			}
			return &PublishOutcome{State: StateConnectRequired, OAuthURL: oauthURL}, nil
		}
	}

	mediaURLs, err := s.media.Finalize(ctx, wf.PostID, wf.Stager)
	if err != nil {
		return &PublishOutcome{State: StateFailed, Message: err.Error()}, err
	}

	results, err := s.post(ctx, wf, mediaURLs)
	if err != nil && len(results) == 0 {
		return &PublishOutcome{State: StateFailed, Message: err.Error()}, err
	}

	outcome := s.settle(results)
	outcome.MediaURLs = mediaURLs

	successes := 0
	for _, r := range results {
		if r.Success {
			successes++
		}
	}

	// The social networks are the authoritative outcome; the content
	// record is bookkeeping. If it cannot be written we log and move on
	// rather than downgrade a result the user has already seen.
	if successes > 0 {
		rec := s.persistRecord(ctx, wf, mediaURLs)
		outcome.Record = rec
	}

	s.recordHistory(ctx, wf, results)

	// err carries a group-level transport failure; the outcome already
	// reflects it per platform.
	return outcome, err
}

func (s *publishService) validate(wf *Workflow) error {
	if !wf.HasBody() {
		return &ValidationError{Reason: "Please generate or write content before publishing"}
	}
	if len(wf.Connectors.Selected()) == 0 {
		return &ValidationError{Reason: "Select at least one platform to post to"}
	}
	return nil
}

// post resolves each connector to a posting strategy and sends one request
// per strategy group: linkedin with a live connection goes through the
// OAuth endpoint, everything else through direct credentials. Per-platform
// results from all groups are merged.
func (s *publishService) post(ctx context.Context, wf *Workflow, mediaURLs []string) ([]transfer.PlatformResult, error) {
	var direct, oauth []string
	for _, connector := range wf.Connectors.Selected() {
		if connector == ConnectorLinkedIn && s.conns.IsConnected(wf.UserID, ConnectorLinkedIn) {
			oauth = append(oauth, connector)
		} else {
			direct = append(direct, connector)
		}
	}

	mediaType := "text"
	if len(mediaURLs) > 0 {
		mediaType = "image"
	}

	idemKey, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	var results []transfer.PlatformResult
	var firstErr error

	send := func(platforms []string, call func(context.Context, *transfer.PostRequest, string) (*transfer.PostResponse, error)) {
		if len(platforms) == 0 {
			return
		}
		req := &transfer.PostRequest{
			ContentText: wf.Draft.Body,
			MediaURLs:   mediaURLs,
			MediaType:   mediaType,
			Platforms:   platforms,
		}
		resp, err := call(ctx, req, idemKey)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			// Transport failure for the group still yields truthful
			// per-platform results.
			for _, p := range platforms {
				results = append(results, transfer.PlatformResult{
					Platform: p,
					Success:  false,
					Error:    err.Error(),
				})
			}
			return
		}
		results = append(results, resp.Results...)
	}

	send(direct, s.social.PostDirect)
	send(oauth, s.social.PostOAuth)

	return results, firstErr
}

// settle folds per-platform results into a terminal state. Overall success
// means every platform succeeded; anything less is reported per platform,
// never as one generic failure.
func (s *publishService) settle(results []transfer.PlatformResult) *PublishOutcome {
	successes := 0
	var failures []string
	for _, r := range results {
		if r.Success {
			successes++
			continue
		}
		failures = append(failures, fmt.Sprintf("%s: %s", r.Platform, r.Error))
	}

	outcome := &PublishOutcome{Results: results}
	switch {
	case len(results) > 0 && successes == len(results):
		outcome.State = StateSucceeded
		outcome.Message = fmt.Sprintf("Posted to %d/%d platforms successfully", successes, len(results))
	case successes > 0:
		outcome.State = StatePartialFailure
		outcome.Message = strings.Join(failures, "\n")
	default:
		outcome.State = StateFailed
		outcome.Message = strings.Join(failures, "\n")
	}
	return outcome
}

func (s *publishService) persistRecord(ctx context.Context, wf *Workflow, mediaURLs []string) *models.ContentRecord {
	rec := &models.ContentRecord{
		Title:     wf.Draft.RawInput,
		Body:      wf.Draft.Body,
		Platforms: wf.Channels.Selected(),
		Media:     mediaURLs,
		Status:    models.ContentStatusPublished,
		AuthorID:  fmt.Sprintf("%d", wf.UserID),
	}

	saved, err := s.content.Create(ctx, rec)
	if err != nil {
		slog.Warn("failed to persist content record after posting", "post_id", wf.PostID, "error", err.Error())
		return rec
	}
	return saved
}

func (s *publishService) recordHistory(ctx context.Context, wf *Workflow, results []transfer.PlatformResult) {
	if s.history == nil {
		return
	}
	for _, r := range results {
		ph := &models.PublishHistory{
			UserID:         wf.UserID,
			PostID:         wf.PostID,
			Platform:       r.Platform,
			Success:        r.Success,
			PlatformPostID: r.PlatformPostID,
			ErrorMessage:   r.Error,
		}
		if _, err := s.history.Create(ctx, ph); err != nil {
			slog.Info(err.Error())
		}
	}
}
