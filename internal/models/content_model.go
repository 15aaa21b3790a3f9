package models

import "time"

// ContentRecord is the bookkeeping record persisted through the upstream
// Content API after a publish or schedule run. It is never written before
// media uploads for the run have completed.
type ContentRecord struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Platforms    []string  `json:"platforms"`
	Media        []string  `json:"media"`
	Status       string    `json:"status"`
	ScheduledFor string    `json:"scheduled_for,omitempty"`
	AuthorID     string    `json:"author_id"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
)

// Draft holds the working text of a publishing workflow. Body is what gets
// posted; RawInput is the user's brief and becomes the record title.
type Draft struct {
	RawInput string
	Body     string
	Source   string
}

const (
	DraftSourceUnset  = "unset"
	DraftSourceManual = "manual"
	DraftSourceAI     = "ai"
)
