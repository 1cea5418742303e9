package utils

var (
	EntryURI       = "/"
	HealthURI      = "/health"
	LoginURI       = "/login"
	LogoutURI      = "/logout"
	InvoiceURI     = "/invoice"
	InvoicePDFURI  = "/invoice/pdf"
	SessionInfoURI = "/api/session"
)

var (
	LoginTemplate   = "portal/login"
	InvoiceTemplate = "portal/invoice"
	ErrorTemplate   = "portal/error"
)

func GetURIs() map[string]string {
	return map[string]string{
		"Entry":       EntryURI,
		"Health":      HealthURI,
		"Login":       LoginURI,
		"Logout":      LogoutURI,
		"Invoice":     InvoiceURI,
		"InvoicePDF":  InvoicePDFURI,
		"SessionInfo": SessionInfoURI,
	}
}
