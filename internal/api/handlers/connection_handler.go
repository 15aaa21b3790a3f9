package handlers

import (
	"log/slog"
	"net/url"

	config "github.com/dataopslabs/socials-gateway/configs"
	job "github.com/dataopslabs/socials-gateway/internal/jobs"
	"github.com/dataopslabs/socials-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ConnectionHandler struct {
	cfg   config.Config
	s     service.ConnectionService
	creds *job.CredentialCheckJob
}

func NewConnectionHandler(cfg config.Config, s service.ConnectionService, creds *job.CredentialCheckJob) *ConnectionHandler {
	return &ConnectionHandler{cfg: cfg, s: s, creds: creds}
}

func (h *ConnectionHandler) ListConnections(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.s.Load(c.Context(), userID)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to load connected accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"accounts": accounts,
		"total":    len(accounts),
	})
}

func (h *ConnectionHandler) Connect(c *fiber.Ctx) error {
	userID := GetUserID(c)
	platform := c.Params("platform")

	oauthURL, err := h.s.Connect(c.Context(), platform, userID)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to start platform connection",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"oauth_url": oauthURL,
	})
}

func (h *ConnectionHandler) Disconnect(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	if err := h.s.Disconnect(c.Context(), int64(accountID), userID); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to disconnect account",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

// OAuthReturn lands the user back from the platform's consent screen. The
// one-shot status params are consumed here, then the user is sent to the
// frontend with those params stripped so a refresh cannot replay them.
func (h *ConnectionHandler) OAuthReturn(c *fiber.Ctx) error {
	userID := GetUserID(c)

	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		q = url.Values{}
	}

	ret, ok := service.ParseOAuthReturn(q)
	if ok && ret.Connected {
		if _, err := h.s.Load(c.Context(), userID); err != nil {
			slog.Info(err.Error())
		}
	}
	if ok && ret.Err != "" {
		slog.Info("platform connection failed", "error", ret.Err)
	}

	target, err := url.Parse(h.cfg.FrontendURL + "/dashboard")
	if err != nil {
		return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
	}
	target.RawQuery = q.Encode()
	return c.Redirect(service.StripOAuthParams(target), fiber.StatusTemporaryRedirect)
}

func (h *ConnectionHandler) CredentialHealth(c *fiber.Ctx) error {
	report, checkedAt := h.creds.Snapshot()
	if report == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"checked": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"checked":    true,
		"checked_at": checkedAt,
		"report":     report,
	})
}
