package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/invoicer/pkg/http/handlers"
	"github.com/oarkflow/invoicer/pkg/utils"
)

func Setup(prefix string, router fiber.Router, h *handlers.Handler, guard fiber.Handler) {
	route := router.Group(prefix)
	route.Get(utils.HealthURI, h.HealthCheck)
	route.Get(utils.EntryURI, h.Entry)
	route.Get(utils.LoginURI, h.LoginPage)
	route.Post(utils.LoginURI, h.PostLogin)

	protected := route.Group("", guard)
	protected.Get(utils.InvoiceURI, h.InvoicePage)
	protected.Post(utils.InvoicePDFURI, h.PostGeneratePDF)
	protected.Get(utils.SessionInfoURI, h.SessionInfo)
	protected.Post(utils.LogoutURI, h.PostLogout)

	router.Use(h.NotFound)
}
