package handlers

import (
	"fmt"
	"log/slog"

	"github.com/dataopslabs/socials-gateway/internal/models"
	"github.com/dataopslabs/socials-gateway/internal/repository"
	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ContentHandler struct {
	s       service.ContentService
	history repository.PublishHistoryRepository
}

func NewContentHandler(s service.ContentService, history repository.PublishHistoryRepository) *ContentHandler {
	return &ContentHandler{s: s, history: history}
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	records, err := h.s.List(c.Context(), fmt.Sprintf("%d", userID))
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to list content",
		})
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	id := c.Params("id")

	record, err := h.s.Get(c.Context(), id)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to get content",
		})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	id := c.Params("id")

	var rec models.ContentRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	updated, err := h.s.Update(c.Context(), id, &rec)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to update content",
		})
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ContentHandler) RemoveContent(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.s.Delete(c.Context(), id); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to remove content",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) PublishHistory(c *fiber.Ctx) error {
	userID := GetUserID(c)

	rows, err := h.history.GetByUserID(c.Context(), userID)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list publish history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}
