package invoicer

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/oarkflow/invoicer/pkg/auth"
	"github.com/oarkflow/invoicer/pkg/config"
	"github.com/oarkflow/invoicer/pkg/http/handlers"
	"github.com/oarkflow/invoicer/pkg/http/middlewares"
	"github.com/oarkflow/invoicer/pkg/http/routes"
	"github.com/oarkflow/invoicer/pkg/invoice"
	"github.com/oarkflow/invoicer/pkg/utils"
)

//go:embed portal
var Assets embed.FS

// Portal wires the whole application: config, limiter, validator, session
// store, renderer, routes. Every dependency is constructed here once and
// injected downward.
type Portal struct {
	App      *fiber.App
	Prefix   string
	Settings *config.Settings

	Sessions *auth.Store
	Limiter  *auth.Limiter
}

type Option func(*Portal)

func WithPrefix(prefix string) Option {
	return func(p *Portal) {
		p.Prefix = prefix
	}
}

func New(settings *config.Settings, opts ...Option) *Portal {
	engine := html.NewFileSystem(http.FS(Assets), ".html")
	engine.AddFuncMap(map[string]any{
		"unescape": func(s string) template.HTML {
			return template.HTML(s)
		},
		"uris": func() map[string]string {
			return utils.GetURIs()
		},
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "portal/layouts/main",
	})

	p := &Portal{
		App:      app,
		Prefix:   "/",
		Settings: settings,
		Limiter:  auth.NewLimiter(settings.MaxLoginAttempts, settings.LockoutWindow),
		Sessions: auth.NewStore(settings.Secret, settings.SessionTTL),
	}
	for _, opt := range opts {
		opt(p)
	}

	validator := auth.NewValidator(p.Limiter, settings.Username, settings.Password)
	renderer := invoice.NewRenderer(settings.CompanyName)
	h := handlers.New(settings, p.Sessions, validator, renderer)

	app.Use(middlewares.SecurityHeaders(settings))
	routes.Setup(p.Prefix, app, h, middlewares.Guard(p.Sessions, settings))
	return p
}

// Run serves until ctx is cancelled. The session sweeper and the limiter
// janitor share the server's lifetime; cancelling ctx stops both before the
// listener is drained.
func (p *Portal) Run(ctx context.Context) error {
	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go p.Sessions.Sweep(bgCtx, time.Minute)
	go p.Limiter.Janitor(bgCtx, 5*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.App.Listen(p.Settings.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("shutting down...")
		return p.App.ShutdownWithTimeout(10 * time.Second)
	}
}
