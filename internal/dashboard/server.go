package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/zulandar/relaydesk/internal/api"
	"github.com/zulandar/relaydesk/internal/config"
	"github.com/zulandar/relaydesk/internal/console"
	"github.com/zulandar/relaydesk/internal/oauth"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	Config *config.Config
	// Backend defaults to an API client for Config.API.
	Backend console.Backend
	// Port overrides Config.Port when positive.
	Port int
	Out  io.Writer
}

// server bundles what the handlers share.
type server struct {
	sessions  *sessions
	installer *oauth.Installer
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Config == nil {
		return fmt.Errorf("dashboard: config is required")
	}
	cfg := opts.Config
	if opts.Backend == nil {
		opts.Backend = api.New(cfg.API.BaseURL, cfg.API.Token)
	}
	if opts.Port <= 0 {
		opts.Port = cfg.Port
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	srv, err := newServer(cfg, opts.Backend, console.Options{})
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	defer srv.sessions.closeAll()

	gin.SetMode(gin.ReleaseMode)
	router, err := newRouter(srv)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Sessions.Sweep, func() { srv.sessions.sweep() }); err != nil {
		return fmt.Errorf("dashboard: session sweep %q: %w", cfg.Sessions.Sweep, err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		httpSrv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func newServer(cfg *config.Config, backend console.Backend, opts console.Options) (*server, error) {
	installer, err := oauth.NewInstaller(cfg.Slack)
	if err != nil {
		return nil, err
	}
	return &server{
		sessions:  newSessions(backend, cfg.Sessions.TTLDuration, opts),
		installer: installer,
	}, nil
}

// newRouter builds the gin engine with templates, recovery and routes.
func newRouter(srv *server) (*gin.Engine, error) {
	router := gin.New()
	router.UseRawPath = true
	router.Use(gin.CustomRecovery(recoverPage))

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	registerRoutes(router, srv)
	return router, nil
}

// parseTemplates loads the embedded HTML templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pathEscape": url.PathEscape,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// fallbackPage is served when a handler panics. It does not depend on the
// templates so it renders even when they are broken.
const fallbackPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Relaydesk</title><link rel="stylesheet" href="/static/style.css"></head>
<body><main class="fallback"><h1>Something went wrong.</h1><p><a href="/dashboard">Reload</a></p></main></body>
</html>
`

func recoverPage(c *gin.Context, err any) {
	log.Printf("dashboard: panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(fallbackPage))
	c.Abort()
}
