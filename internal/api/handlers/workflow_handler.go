package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	config "github.com/dataopslabs/socials-gateway/configs"
	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/dataopslabs/socials-gateway/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type WorkflowHandler struct {
	cfg      config.Config
	publish  service.PublishService
	schedule service.ScheduleService
	ai       service.AIService
}

func NewWorkflowHandler(
	cfg config.Config,
	publish service.PublishService,
	schedule service.ScheduleService,
	ai service.AIService) *WorkflowHandler {
	return &WorkflowHandler{
		cfg:      cfg,
		publish:  publish,
		schedule: schedule,
		ai:       ai,
	}
}

// Publish posts the submitted content to the selected platforms right away.
func (h *WorkflowHandler) Publish(c *fiber.Ctx) error {
	wf, creation, err := h.buildWorkflow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	outcome, err := h.publish.Publish(c.Context(), wf, creation.ConfirmConnect)
	return h.respond(c, outcome, err)
}

// Schedule stores the submitted content for later delivery.
func (h *WorkflowHandler) Schedule(c *fiber.Ctx) error {
	wf, creation, err := h.buildWorkflow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	outcome, err := h.schedule.Schedule(c.Context(), wf, &service.ScheduleRequest{
		Date:           creation.ScheduledDate,
		Time:           creation.ScheduledTime,
		Location:       time.Local,
		ConfirmConnect: creation.ConfirmConnect,
	})
	return h.respond(c, outcome, err)
}

// GenerateText runs the prompt through the AI endpoint and returns the
// generated body so the client can review it before publishing.
func (h *WorkflowHandler) GenerateText(c *fiber.Ctx) error {
	var req transfer.GeneratePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	text, err := h.ai.GenerateText(c.Context(), req.Prompt)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Text generation failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"generated_text": text,
	})
}

func (h *WorkflowHandler) GenerateImage(c *fiber.Ctx) error {
	var req transfer.GeneratePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	asset, err := h.ai.GenerateImage(c.Context(), req.Prompt)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Image generation failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(asset)
}

func (h *WorkflowHandler) buildWorkflow(c *fiber.Ctx) (*service.Workflow, *transfer.PublishCreation, error) {
	userID := GetUserID(c)

	creation := &transfer.PublishCreation{
		Title:           c.FormValue("title"),
		Body:            c.FormValue("body"),
		Source:          c.FormValue("source"),
		DisplayChannels: c.FormValue("display_channels"),
		Connectors:      c.FormValue("connectors"),
		LibraryAssets:   c.FormValue("library_assets"),
		ConfirmConnect:  c.FormValue("confirm_connect") == "true",
		ScheduledDate:   c.FormValue("scheduled_date"),
		ScheduledTime:   c.FormValue("scheduled_time"),
	}

	wf := service.NewWorkflow(userID, h.cfg.DefaultDisplayChanID)
	if creation.Source == models.DraftSourceAI {
		wf.ApplyGenerated(creation.Title, creation.Body)
	} else {
		wf.AddContent(creation.Title)
		if creation.Body != "" {
			wf.SetBody(creation.Body)
		}
	}

	if creation.DisplayChannels != "" {
		var channels []string
		if err := json.Unmarshal([]byte(creation.DisplayChannels), &channels); err != nil {
			return nil, nil, errors.New("invalid display_channels")
		}
		wf.Channels.Replace(channels)
	}

	if creation.Connectors != "" {
		var connectors []string
		if err := json.Unmarshal([]byte(creation.Connectors), &connectors); err != nil {
			return nil, nil, errors.New("invalid connectors")
		}
		wf.Connectors.Replace(connectors)
	}

	if creation.LibraryAssets != "" {
		var assets []models.LibraryAsset
		if err := json.Unmarshal([]byte(creation.LibraryAssets), &assets); err != nil {
			return nil, nil, errors.New("invalid library_assets")
		}
		wf.Stager.SelectFromLibrary(assets)
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["files"] {
			data, err := readFile(fh)
			if err != nil {
				return nil, nil, err
			}
			if _, err := wf.Stager.Stage(fh.Filename, data); err != nil {
				return nil, nil, err
			}
		}
	}

	return wf, creation, nil
}

func (h *WorkflowHandler) respond(c *fiber.Ctx, outcome *service.PublishOutcome, err error) error {
	if err != nil {
		if service.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, service.ErrRunInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if outcome != nil {
			return c.Status(fiber.StatusBadGateway).JSON(outcome)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if outcome.State == service.StateConnectRequired {
		return c.Status(fiber.StatusConflict).JSON(outcome)
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
