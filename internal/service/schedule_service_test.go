package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataopslabs/socials-gateway/internal/models"
)

func TestCombineScheduleTimeUTC(t *testing.T) {
	got, err := CombineScheduleTime("2025-03-01", "09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T09:30:00.000Z", got)
}

func TestCombineScheduleTimeConvertsZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got, err := CombineScheduleTime("2025-03-01", "09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T07:30:00.000Z", got)
}

func TestCombineScheduleTimeInvalid(t *testing.T) {
	_, err := CombineScheduleTime("not-a-date", "09:30", time.UTC)
	assert.Error(t, err)
}

type scheduleFixture struct {
	media   *fakeMedia
	conns   *fakeConns
	content *fakeContent
	svc     ScheduleService
}

func newScheduleFixture() *scheduleFixture {
	f := &scheduleFixture{
		media:   &fakeMedia{},
		conns:   &fakeConns{connected: map[userPlatform]bool{}},
		content: &fakeContent{},
	}
	f.svc = NewScheduleService(f.media, f.conns, f.content)
	return f
}

func TestScheduleRequiresDateAndTime(t *testing.T) {
	f := newScheduleFixture()

	for _, req := range []*ScheduleRequest{
		{Date: "", Time: "", Location: time.UTC},
		{Date: "2025-03-01", Time: "", Location: time.UTC},
		{Date: "", Time: "09:30", Location: time.UTC},
	} {
		wf := NewWorkflow(1, "1")
		wf.AddContent("hello")

		_, err := f.svc.Schedule(context.Background(), wf, req)
		assert.True(t, IsValidationError(err))
	}

	// nothing was uploaded or stored for any rejected attempt
	assert.Zero(t, f.media.calls)
	assert.Empty(t, f.content.created)
}

func TestScheduleRequiresBodyAndConnector(t *testing.T) {
	f := newScheduleFixture()
	req := &ScheduleRequest{Date: "2025-03-01", Time: "09:30", Location: time.UTC}

	wf := NewWorkflow(1, "1")
	_, err := f.svc.Schedule(context.Background(), wf, req)
	assert.True(t, IsValidationError(err))

	wf = NewWorkflow(1, "1")
	wf.AddContent("hello")
	wf.Connectors.Replace(nil)
	_, err = f.svc.Schedule(context.Background(), wf, req)
	assert.True(t, IsValidationError(err))
}

func TestScheduleStoresRecord(t *testing.T) {
	f := newScheduleFixture()

	wf := NewWorkflow(9, "1")
	wf.AddContent("scheduled hello")

	outcome, err := f.svc.Schedule(context.Background(), wf, &ScheduleRequest{
		Date:     "2025-03-01",
		Time:     "09:30",
		Location: time.UTC,
	})
	require.NoError(t, err)

	assert.Equal(t, StateScheduled, outcome.State)
	require.Len(t, f.content.created, 1)

	rec := f.content.created[0]
	assert.Equal(t, models.ContentStatusScheduled, rec.Status)
	assert.Equal(t, "2025-03-01T09:30:00.000Z", rec.ScheduledFor)
	assert.Equal(t, "9", rec.AuthorID)
	assert.Equal(t, 1, f.media.calls)
}

func TestScheduleLinkedInGating(t *testing.T) {
	f := newScheduleFixture()
	f.conns.oauthURL = "https://upstream.example.com/oauth/linkedin"
	req := &ScheduleRequest{Date: "2025-03-01", Time: "09:30", Location: time.UTC}

	wf := NewWorkflow(1, "1")
	wf.AddContent("hello")
	wf.Connectors.Replace([]string{ConnectorLinkedIn})

	_, err := f.svc.Schedule(context.Background(), wf, req)
	assert.True(t, IsValidationError(err))

	req.ConfirmConnect = true
	wf = NewWorkflow(1, "1")
	wf.AddContent("hello")
	wf.Connectors.Replace([]string{ConnectorLinkedIn})

	outcome, err := f.svc.Schedule(context.Background(), wf, req)
	require.NoError(t, err)
	assert.Equal(t, StateConnectRequired, outcome.State)
	assert.Empty(t, f.content.created)
}

func TestScheduleCreateFailureFailsRun(t *testing.T) {
	f := newScheduleFixture()
	f.content.err = errors.New("content api down")

	wf := NewWorkflow(1, "1")
	wf.AddContent("hello")

	outcome, err := f.svc.Schedule(context.Background(), wf, &ScheduleRequest{
		Date:     "2025-03-01",
		Time:     "09:30",
		Location: time.UTC,
	})
	require.Error(t, err)
	assert.Equal(t, StateFailed, outcome.State)
}
