package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/invoicer/pkg/auth"
	"github.com/oarkflow/invoicer/pkg/config"
	"github.com/oarkflow/invoicer/pkg/invoice"
	"github.com/oarkflow/invoicer/pkg/utils"
)

// Handler carries the wired dependencies for every route. Everything is
// injected at startup; there are no package-level singletons.
type Handler struct {
	settings  *config.Settings
	sessions  *auth.Store
	validator *auth.Validator
	renderer  *invoice.Renderer
}

func New(settings *config.Settings, sessions *auth.Store, validator *auth.Validator, renderer *invoice.Renderer) *Handler {
	return &Handler{
		settings:  settings,
		sessions:  sessions,
		validator: validator,
		renderer:  renderer,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// NotFound is the catch-all: anything unrouted lands back on the entry page.
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Redirect(utils.EntryURI, fiber.StatusSeeOther)
}

func (h *Handler) renderErrorPage(c *fiber.Ctx, statusCode int, title, message, description, retryURL string) error {
	errorID := fmt.Sprintf("ERR-%d-%d", time.Now().Unix(), statusCode)
	return c.Status(statusCode).Render(utils.ErrorTemplate, fiber.Map{
		"Title":       title,
		"StatusCode":  statusCode,
		"Message":     message,
		"Description": description,
		"RetryURL":    retryURL,
		"ErrorID":     errorID,
	})
}

func (h *Handler) currentSession(c *fiber.Ctx) *auth.Session {
	return h.sessions.Read(c.Cookies(h.settings.SessionName))
}
