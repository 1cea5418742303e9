package invoicer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/invoicer/pkg/config"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Addr:             ":0",
		Environment:      "development",
		Secret:           []byte("0123456789abcdef0123456789abcdef"),
		SessionName:      "session",
		SessionTTL:       8 * time.Hour,
		Username:         "demo",
		Password:         "demo1234",
		MaxLoginAttempts: 5,
		LockoutWindow:    15 * time.Minute,
		CompanyName:      "Suitlabs Bali",
	}
}

func loginForm(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("response carries no %q cookie", name)
	return nil
}

func login(t *testing.T, p *Portal) *http.Cookie {
	t.Helper()
	resp, err := p.App.Test(loginForm("demo", "demo1234"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/invoice", resp.Header.Get("Location"))
	return sessionCookie(t, resp, "session")
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	resp, err := p.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEntryRedirectsByState(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	resp, err := p.App.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	ck := login(t, p)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	resp, err = p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, "/invoice", resp.Header.Get("Location"))
}

func TestGuard_NoSession(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	resp, err := p.App.Test(httptest.NewRequest(http.MethodGet, "/invoice", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuard_JSONClientsGet401(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_LogoutInvalidatesSession(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	ck := login(t, p)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(ck)
	resp, err := p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The old cookie value still decrypts but its session is gone.
	req = httptest.NewRequest(http.MethodGet, "/invoice", nil)
	req.AddCookie(ck)
	resp, err = p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogin_WrongCredentialsBounceBack(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	resp, err := p.App.Test(loginForm("demo", "wrong"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogin_RateLimitKicksIn(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	for i := 0; i < 5; i++ {
		resp, err := p.App.Test(loginForm("demo", "wrong"))
		require.NoError(t, err)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}

	// The 6th attempt is refused before the credentials are checked, even
	// when they are correct.
	resp, err := p.App.Test(loginForm("demo", "demo1234"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
	for _, ck := range resp.Cookies() {
		require.NotEqual(t, "session", ck.Name, "lockout must not mint a session")
	}
}

func TestLogin_UsernameComparedVerbatim(t *testing.T) {
	t.Parallel()

	// A configured username with HTML-significant characters must still
	// authenticate; the submitted value is never rewritten before comparison.
	settings := testSettings()
	settings.Username = `d<e"m&o`
	p := New(settings)

	resp, err := p.App.Test(loginForm(`d<e"m&o`, "demo1234"))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/invoice", resp.Header.Get("Location"))
	sessionCookie(t, resp, "session")
}

func TestLogin_SessionErrorPage(t *testing.T) {
	t.Parallel()

	// A secret the token cipher rejects makes session creation fail after a
	// correct credential check; the user gets the rendered error page.
	settings := testSettings()
	settings.Secret = []byte("short")
	p := New(settings)

	resp, err := p.App.Test(loginForm("demo", "demo1234"))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Session Error")
	require.Contains(t, string(body), "Please try logging in again.")
}

func TestLogin_OpenRedirectRejected(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	for _, target := range []string{"//evil.example", "https://evil.example", ""} {
		form := url.Values{}
		form.Set("username", "demo")
		form.Set("password", "demo1234")
		form.Set("redirect", target)
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := p.App.Test(req)
		require.NoError(t, err)
		require.Equal(t, "/invoice", resp.Header.Get("Location"), "redirect target %q", target)
	}
}

func TestInvoicePage_WithSession(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	ck := login(t, p)

	req := httptest.NewRequest(http.MethodGet, "/invoice", nil)
	req.AddCookie(ck)
	resp, err := p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}

func TestSessionInfo(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	ck := login(t, p)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(ck)
	resp, err := p.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestGeneratePDF(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	ck := login(t, p)

	form := url.Values{}
	form.Set("invoiceNumber", "A1")
	form.Set("date", "2024-03-05")
	form.Set("dueDate", "2024-03-19")
	form.Set("billTo", "PT Example\nDenpasar")
	form.Set("tax", "10")
	form.Set("amountPaid", "1000")
	form.Add("item_description", "Design work")
	form.Add("item_quantity", "10")
	form.Add("item_rate", "200")
	form.Add("item_description", "Hosting")
	form.Add("item_quantity", "1")
	form.Add("item_rate", "500")

	req := httptest.NewRequest(http.MethodPost, "/invoice/pdf", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(ck)

	resp, err := p.App.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "invoice-A1-2024-03-05.pdf")
}

func TestUnknownRouteRedirectsToEntry(t *testing.T) {
	t.Parallel()

	p := New(testSettings())
	resp, err := p.App.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}
