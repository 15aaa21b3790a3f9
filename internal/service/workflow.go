package service

import (
	"strings"
	"sync"

	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/google/uuid"
)

// Workflow holds the state of one content-publishing run: the draft text,
// staged media, and the two independent selections. A fresh Workflow gets
// its own post id, so a retried submission is a new run with new object
// keys.
type Workflow struct {
	PostID     string
	UserID     int64
	Draft      models.Draft
	Stager     *MediaStager
	Channels   *DisplayChannelSelection
	Connectors *PostingConnectorSelection

	mu       sync.Mutex
	inFlight bool
}

func NewWorkflow(userID int64, defaultChannelID string) *Workflow {
	return &Workflow{
		PostID:     uuid.NewString(),
		UserID:     userID,
		Draft:      models.Draft{Source: models.DraftSourceUnset},
		Stager:     NewMediaStager(),
		Channels:   NewDisplayChannelSelection(defaultChannelID),
		Connectors: NewPostingConnectorSelection(),
	}
}

// AddContent takes the user's text as-is: the raw input becomes the body.
func (w *Workflow) AddContent(raw string) {
	w.Draft.RawInput = raw
	w.Draft.Body = raw
	w.Draft.Source = models.DraftSourceManual
}

// ApplyGenerated records an AI-produced body for the given prompt.
func (w *Workflow) ApplyGenerated(prompt, body string) {
	w.Draft.RawInput = prompt
	w.Draft.Body = body
	w.Draft.Source = models.DraftSourceAI
}

// SetBody edits the body in place without changing its provenance.
func (w *Workflow) SetBody(body string) {
	w.Draft.Body = body
}

func (w *Workflow) HasBody() bool {
	return strings.TrimSpace(w.Draft.Body) != ""
}

// Begin claims the workflow for a publish or schedule attempt. A second
// attempt before Settle is rejected rather than producing duplicate posts.
func (w *Workflow) Begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrRunInFlight
	}
	w.inFlight = true
	return nil
}

func (w *Workflow) Settle() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}
