package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublishService struct {
	outcome *service.PublishOutcome
	err     error
	lastWF  *service.Workflow
	confirm bool
}

func (f *fakePublishService) Publish(_ context.Context, wf *service.Workflow, confirmConnect bool) (*service.PublishOutcome, error) {
	f.lastWF = wf
	f.confirm = confirmConnect
	return f.outcome, f.err
}

type fakeScheduleService struct {
	outcome *service.PublishOutcome
	err     error
	lastReq *service.ScheduleRequest
}

func (f *fakeScheduleService) Schedule(_ context.Context, wf *service.Workflow, req *service.ScheduleRequest) (*service.PublishOutcome, error) {
	f.lastReq = req
	return f.outcome, f.err
}

type fakeAI struct{}

func (fakeAI) GenerateText(_ context.Context, prompt string) (string, error) {
	return "drafted: " + prompt, nil
}

func (fakeAI) GenerateImage(_ context.Context, _ string) (*models.LibraryAsset, error) {
	return &models.LibraryAsset{ID: "gen-1", URL: "https://bucket.s3.amazonaws.com/ai/gen-1.png", Type: models.MediaTypeImage, AIGenerated: true}, nil
}

func newTestApp(publish *fakePublishService, schedule *fakeScheduleService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})

	h := NewWorkflowHandler(config.Config{DefaultDisplayChanID: "1"}, publish, schedule, fakeAI{})
	app.Post("/api/posts/publish", h.Publish)
	app.Post("/api/posts/schedule", h.Schedule)
	app.Post("/api/ai/generate-text", h.GenerateText)
	return app
}

func publishForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, contentType string) (*http.Response, map[string]any) {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestPublishHandlerSuccess(t *testing.T) {
	publish := &fakePublishService{outcome: &service.PublishOutcome{State: service.StateSucceeded, Message: "Posted to 1/1 platforms successfully"}}
	app := newTestApp(publish, &fakeScheduleService{})

	body, ct := publishForm(t, map[string]string{
		"title":      "hello twitter",
		"connectors": `["twitter"]`,
	})
	resp, out := doRequest(t, app, http.MethodPost, "/api/posts/publish", body, ct)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "succeeded", out["state"])

	require.NotNil(t, publish.lastWF)
	assert.Equal(t, int64(7), publish.lastWF.UserID)
	assert.Equal(t, "hello twitter", publish.lastWF.Draft.Body)
	assert.Equal(t, []string{"twitter"}, publish.lastWF.Connectors.Selected())
}

func TestPublishHandlerValidationError(t *testing.T) {
	publish := &fakePublishService{err: &service.ValidationError{Reason: "Please generate or write content before publishing"}}
	app := newTestApp(publish, &fakeScheduleService{})

	body, ct := publishForm(t, map[string]string{})
	resp, out := doRequest(t, app, http.MethodPost, "/api/posts/publish", body, ct)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "before publishing")
}

func TestPublishHandlerConnectRequired(t *testing.T) {
	publish := &fakePublishService{outcome: &service.PublishOutcome{
		State:    service.StateConnectRequired,
		OAuthURL: "https://www.linkedin.com/oauth/v2/authorization",
	}}
	app := newTestApp(publish, &fakeScheduleService{})

	body, ct := publishForm(t, map[string]string{
		"title":           "hi",
		"confirm_connect": "true",
	})
	resp, out := doRequest(t, app, http.MethodPost, "/api/posts/publish", body, ct)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "connect_required", out["state"])
	assert.Contains(t, out["oauth_url"], "linkedin.com")
	assert.True(t, publish.confirm)
}

func TestPublishHandlerRunInFlight(t *testing.T) {
	publish := &fakePublishService{err: service.ErrRunInFlight}
	app := newTestApp(publish, &fakeScheduleService{})

	body, ct := publishForm(t, map[string]string{"title": "hi"})
	resp, _ := doRequest(t, app, http.MethodPost, "/api/posts/publish", body, ct)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestScheduleHandlerPassesFields(t *testing.T) {
	schedule := &fakeScheduleService{outcome: &service.PublishOutcome{State: service.StateScheduled}}
	app := newTestApp(&fakePublishService{}, schedule)

	body, ct := publishForm(t, map[string]string{
		"title":          "later",
		"scheduled_date": "2025-03-01",
		"scheduled_time": "09:30",
	})
	resp, out := doRequest(t, app, http.MethodPost, "/api/posts/schedule", body, ct)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "scheduled", out["state"])
	require.NotNil(t, schedule.lastReq)
	assert.Equal(t, "2025-03-01", schedule.lastReq.Date)
	assert.Equal(t, "09:30", schedule.lastReq.Time)
}

func TestGenerateTextHandler(t *testing.T) {
	app := newTestApp(&fakePublishService{}, &fakeScheduleService{})

	payload, err := json.Marshal(map[string]string{"prompt": "a launch post"})
	require.NoError(t, err)
	resp, out := doRequest(t, app, http.MethodPost, "/api/ai/generate-text", bytes.NewReader(payload), "application/json")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "drafted: a launch post", out["generated_text"])

	payload, err = json.Marshal(map[string]string{"prompt": ""})
	require.NoError(t, err)
	resp, _ = doRequest(t, app, http.MethodPost, "/api/ai/generate-text", bytes.NewReader(payload), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
