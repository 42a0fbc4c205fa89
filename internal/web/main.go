// Package web wires the fiber application: templates, static files, ops
// endpoints, the admin route guard and every handler.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	fiberlogger "github.com/folio-cms/folio/internal/logger/adapter/fiber"
	"github.com/folio-cms/folio/internal/web/handler"
	contactAPI "github.com/folio-cms/folio/internal/web/handler/api/contact"
	messageAPI "github.com/folio-cms/folio/internal/web/handler/api/message"
	projectAPI "github.com/folio-cms/folio/internal/web/handler/api/project"
	sessionAPI "github.com/folio-cms/folio/internal/web/handler/api/session"
	settingAPI "github.com/folio-cms/folio/internal/web/handler/api/setting"
	"github.com/folio-cms/folio/internal/web/handler/dashboard"
	"github.com/folio-cms/folio/internal/web/handler/login"
	"github.com/folio-cms/folio/internal/web/handler/logout"
	"github.com/folio-cms/folio/internal/web/handler/portfolio"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// HealthPath answers 200 while the service accepts traffic, 503 while shutting down.
	HealthPath = "/healthz"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	sm           *session.Manager
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the health check for the configured grace period, then stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the health check passes.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("date", func(ms int64) string {
		return time.UnixMilli(ms).UTC().Format("Jan 2, 2006")
	})
	templateEngine.AddFunc("join", func(items []string, sep string) string {
		return strings.Join(items, sep)
	})
	templateEngine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}

		return *s
	})
	templateEngine.AddFunc("paragraphs", func(s string) []string {
		return strings.FieldsFunc(s, func(r rune) bool { return r == '\n' })
	})

	return templateEngine
}

// cleanPath collapses repeated slashes so //projects is routed like /projects.
func cleanPath(c *fiber.Ctx) error {
	p := c.Path()
	if !strings.Contains(p, "//") {
		return c.Next()
	}

	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}

	c.Path(p)

	return c.Next()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, sm *session.Manager) (*Service, error) {
	if cfg == nil || db == nil || sm == nil {
		return nil, handler.ErrNilACD
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
		sm:  sm,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log}))

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Get(HealthPath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     false,
			},
		),
	)

	// every admin page sits behind the route guard
	app.Use(handler.AdminPath, authmiddleware.Guard(sm))

	// init handlers (they register their own routes)
	services := []handler.Service{
		&portfolio.Handler,
		&login.Handler,
		&logout.Handler,
		&dashboard.Handler,
		&sessionAPI.Handler,
		&contactAPI.Handler,
		&projectAPI.Handler,
		&messageAPI.Handler,
		&settingAPI.Handler,
	}

	for _, h := range services {
		if err := h.Init(app, cfg, db, sm); err != nil {
			return nil, err
		}
	}

	return service, nil
}
