package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/oarkflow/invoicer/pkg/auth"
	"github.com/oarkflow/invoicer/pkg/config"
	"github.com/oarkflow/invoicer/pkg/utils"
)

// SessionKey is the Locals key the guard stores the resolved session under.
const SessionKey = "session"

// Guard gates the protected routes on session validity. It only ever reads
// the store: invalid or expired sessions are torn down and the request is
// bounced to the login page with its original URI stashed for after login.
func Guard(store *auth.Store, settings *config.Settings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(settings.SessionName)
		sess := store.Read(tokenStr)
		if !store.Valid(sess) {
			store.Destroy(tokenStr)
			c.Cookie(utils.GetCookie(settings.EnableHTTPS, settings.Environment, settings.SessionName, "", -1))
			// Accepts falls back to the first offer when the header is
			// absent, so HTML leads and only explicit JSON clients get 401.
			if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"authenticated": false,
					"error":         "authentication required",
				})
			}
			c = flash.WithData(c, fiber.Map{"last_visited_uri": c.OriginalURL()})
			return c.Redirect(utils.LoginURI, fiber.StatusSeeOther)
		}

		c.Locals(SessionKey, sess)
		c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
