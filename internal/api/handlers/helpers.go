package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUserID returns the authenticated user's id from the request locals,
// or 0 when the request did not pass through the auth middleware.
func GetUserID(c *fiber.Ctx) int64 {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return 0
	}
	userID, _ := strconv.Atoi(raw)
	return int64(userID)
}
