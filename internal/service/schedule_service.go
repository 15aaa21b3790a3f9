package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dataopslabs/socials-gateway/internal/models"
)

const (
	scheduleInputLayout = "2006-01-02T15:04"
	scheduleWireLayout  = "2006-01-02T15:04:05.000Z"
)

// CombineScheduleTime joins the date and time form fields, interprets them
// in loc, and renders the UTC instant the content API expects.
func CombineScheduleTime(date, clock string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(scheduleInputLayout, date+"T"+clock, loc)
	if err != nil {
		return "", fmt.Errorf("parsing schedule time: %w", err)
	}
	return t.UTC().Format(scheduleWireLayout), nil
}

type ScheduleService interface {
	Schedule(ctx context.Context, wf *Workflow, req *ScheduleRequest) (*PublishOutcome, error)
}

type ScheduleRequest struct {
	Date           string
	Time           string
	Location       *time.Location
	ConfirmConnect bool
}

type scheduleService struct {
	media   MediaService
	conns   ConnectionService
	content ContentService
}

func NewScheduleService(media MediaService, conns ConnectionService, content ContentService) ScheduleService {
	return &scheduleService{media: media, conns: conns, content: content}
}

// Schedule stores the post for later delivery. It performs the same
// validation as an immediate publish, then uploads media and writes the
// content record with its scheduled time. Nothing is posted now; delivery
// at the scheduled time is the content API's job.
func (s *scheduleService) Schedule(ctx context.Context, wf *Workflow, req *ScheduleRequest) (*PublishOutcome, error) {
	if err := wf.Begin(); err != nil {
		return nil, err
	}
	defer wf.Settle()

	if !wf.HasBody() {
		return nil, &ValidationError{Reason: "Please generate or write content before publishing"}
	}
	if len(wf.Connectors.Selected()) == 0 {
		return nil, &ValidationError{Reason: "Select at least one platform to post to"}
	}
	if req.Date == "" || req.Time == "" {
		return nil, &ValidationError{Reason: "Please select both date and time for scheduling"}
	}

	if wf.Connectors.Contains(ConnectorLinkedIn) {
		connected, err := s.conns.Connected(ctx, wf.UserID, ConnectorLinkedIn)
		if err != nil {
			return nil, err
		}
		if !connected {
			if !req.ConfirmConnect {
				return nil, &ValidationError{Reason: "LinkedIn is selected but not connected. Connect your LinkedIn account or deselect it."}
			}
			oauthURL, err := s.conns.Connect(ctx, ConnectorLinkedIn, wf.UserID)
			if err != nil {
				return nil, err
			}
			return &PublishOutcome{State: StateConnectRequired, OAuthURL: oauthURL}, nil
		}
	}

	scheduledFor, err := CombineScheduleTime(req.Date, req.Time, req.Location)
	if err != nil {
		return nil, &ValidationError{Reason: "Invalid schedule date or time"}
	}

	mediaURLs, err := s.media.Finalize(ctx, wf.PostID, wf.Stager)
	if err != nil {
		return &PublishOutcome{State: StateFailed, Message: err.Error()}, err
	}

	rec := &models.ContentRecord{
		Title:        wf.Draft.RawInput,
		Body:         wf.Draft.Body,
		Platforms:    wf.Channels.Selected(),
		Media:        mediaURLs,
		Status:       models.ContentStatusScheduled,
		ScheduledFor: scheduledFor,
		AuthorID:     fmt.Sprintf("%d", wf.UserID),
	}

	// Unlike a publish run, a scheduled post only exists as this record.
	// Failing to store it fails the whole run.
	saved, err := s.content.Create(ctx, rec)
	if err != nil {
		return &PublishOutcome{State: StateFailed, Message: err.Error()}, err
	}

	return &PublishOutcome{
		State:     StateScheduled,
		Message:   fmt.Sprintf("Post scheduled for %s", scheduledFor),
		MediaURLs: mediaURLs,
		Record:    saved,
	}, nil
}
