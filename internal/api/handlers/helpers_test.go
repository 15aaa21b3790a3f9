package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestGetUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatInt(GetUserID(c), 10))
	})
	app.Get("/auth/id", func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.SendString(strconv.FormatInt(GetUserID(c), 10))
	})

	// no auth middleware ran, so the local is absent; must not panic
	resp, err := app.Test(httptest.NewRequest("GET", "/id", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "0", bodyString(t, resp))

	resp, err = app.Test(httptest.NewRequest("GET", "/auth/id", nil))
	require.NoError(t, err)
	assert.Equal(t, "7", bodyString(t, resp))
}
