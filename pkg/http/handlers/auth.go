package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/invoicer/pkg/auth"
	"github.com/oarkflow/invoicer/pkg/utils"
)

// Entry routes the bare domain to the editor or the login page depending on
// whether the visitor already holds a valid session.
func (h *Handler) Entry(c *fiber.Ctx) error {
	if h.sessions.Valid(h.currentSession(c)) {
		return c.Redirect(utils.InvoiceURI, fiber.StatusSeeOther)
	}
	return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
}

func (h *Handler) LoginPage(c *fiber.Ctx) error {
	if h.sessions.Valid(h.currentSession(c)) {
		return c.Redirect(utils.InvoiceURI, fiber.StatusSeeOther)
	}
	data := flash.Get(c)
	errMsg, _ := data["error"].(string)
	username, _ := data["username"].(string)
	redirect, _ := data["last_visited_uri"].(string)
	return c.Render(utils.LoginTemplate, fiber.Map{
		"Title":    "Login",
		"Error":    errMsg,
		"Username": username,
		"Redirect": redirect,
	})
}

func (h *Handler) PostLogin(c *fiber.Ctx) error {
	// The username is compared verbatim; escaping for display is the
	// template's job, and rewriting it here would lock out any configured
	// username containing HTML-significant characters.
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		c = flash.WithData(c, fiber.Map{
			"error":    "Username and password are required.",
			"username": username,
		})
		return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
	}

	ok, err := h.validator.Validate(c.UserContext(), username, password)
	if err != nil {
		var rlErr *auth.RateLimitError
		if errors.As(err, &rlErr) {
			log.Printf("rate limited login attempt from %s", utils.GetClientIP(c))
			// The countdown message is the only detail the lockout reveals.
			c = flash.WithData(c, fiber.Map{
				"error":    rlErr.Error(),
				"username": username,
			})
			return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
		}
		return h.renderErrorPage(c, fiber.StatusInternalServerError, "Login Error",
			"Your login could not be processed.",
			"Please try again in a moment.", utils.LoginURI)
	}
	if !ok {
		// Generic on purpose: no hint whether the username or the password
		// was the wrong half. The password is never sent back.
		c = flash.WithData(c, fiber.Map{
			"error":    "Invalid username or password",
			"username": username,
		})
		return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
	}

	tokenStr, _, err := h.sessions.Create(username)
	if err != nil {
		return h.renderErrorPage(c, fiber.StatusInternalServerError, "Session Error",
			"Your session could not be created.",
			"Please try logging in again.", utils.LoginURI)
	}
	c.Cookie(utils.GetCookie(h.settings.EnableHTTPS, h.settings.Environment,
		h.settings.SessionName, tokenStr, int(h.settings.SessionTTL.Seconds())))

	target := c.FormValue("redirect")
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = utils.InvoiceURI
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

func (h *Handler) PostLogout(c *fiber.Ctx) error {
	tokenStr := c.Cookies(h.settings.SessionName)
	h.sessions.Destroy(tokenStr)
	c.Cookie(utils.GetCookie(h.settings.EnableHTTPS, h.settings.Environment, h.settings.SessionName, "", -1))
	return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
}
