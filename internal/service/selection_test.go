package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayChannelSelectionDefaults(t *testing.T) {
	s := NewDisplayChannelSelection("1")
	assert.Equal(t, []string{"1"}, s.Selected())
	assert.True(t, s.Contains("1"))
}

func TestDisplayChannelSelectionToggle(t *testing.T) {
	s := NewDisplayChannelSelection("1")

	s.Toggle("2")
	assert.Equal(t, []string{"1", "2"}, s.Selected())

	s.Toggle("1")
	assert.Equal(t, []string{"2"}, s.Selected())
	assert.False(t, s.Contains("1"))

	// deselecting everything is allowed for display channels
	s.Toggle("2")
	assert.Empty(t, s.Selected())
}

func TestPostingConnectorSelectionDefaults(t *testing.T) {
	s := NewPostingConnectorSelection()
	assert.Equal(t, []string{ConnectorTwitter}, s.Selected())
}

func TestPostingConnectorSelectionToggle(t *testing.T) {
	s := NewPostingConnectorSelection()

	s.Toggle(ConnectorLinkedIn)
	assert.Equal(t, []string{ConnectorTwitter, ConnectorLinkedIn}, s.Selected())

	s.Toggle(ConnectorTwitter)
	s.Toggle(ConnectorLinkedIn)
	assert.Empty(t, s.Selected())
}

func TestSelectionReplace(t *testing.T) {
	s := NewPostingConnectorSelection()
	s.Replace([]string{ConnectorLinkedIn})
	assert.Equal(t, []string{ConnectorLinkedIn}, s.Selected())
	assert.False(t, s.Contains(ConnectorTwitter))
}

func TestWorkflowDraftSources(t *testing.T) {
	wf := NewWorkflow(7, "1")
	assert.False(t, wf.HasBody())

	wf.AddContent("hello world")
	assert.True(t, wf.HasBody())
	assert.Equal(t, "hello world", wf.Draft.RawInput)
	assert.Equal(t, "hello world", wf.Draft.Body)

	wf.SetBody("hello, edited")
	assert.Equal(t, "hello world", wf.Draft.RawInput)
	assert.Equal(t, "hello, edited", wf.Draft.Body)
}

func TestWorkflowWhitespaceBody(t *testing.T) {
	wf := NewWorkflow(7, "1")
	wf.AddContent("   \n\t ")
	assert.False(t, wf.HasBody())
}

func TestWorkflowRunGuard(t *testing.T) {
	wf := NewWorkflow(7, "1")

	require.NoError(t, wf.Begin())
	assert.ErrorIs(t, wf.Begin(), ErrRunInFlight)

	wf.Settle()
	require.NoError(t, wf.Begin())
}

func TestWorkflowFreshPostID(t *testing.T) {
	a := NewWorkflow(7, "1")
	b := NewWorkflow(7, "1")
	require.NotEmpty(t, a.PostID)
	assert.NotEqual(t, a.PostID, b.PostID)
}
