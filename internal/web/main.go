package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	accesslog "github.com/enterprise-sso/sso-portal/internal/logger/adapter/fiber"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler/dashboard"
	"github.com/enterprise-sso/sso-portal/internal/web/handler/health"
	"github.com/enterprise-sso/sso-portal/internal/web/handler/info"
	"github.com/enterprise-sso/sso-portal/internal/web/handler/login"
	"github.com/enterprise-sso/sso-portal/internal/web/handler/logout"
	authmiddleware "github.com/enterprise-sso/sso-portal/internal/web/middleware/auth"

	oidchandler "github.com/enterprise-sso/sso-portal/internal/web/handler/auth/oidc"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	invalidated  *auth.InvalidationSet
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

// WaitShutdown waits for graceful shutdown of the portal server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so the
	// health check returns fail while the LB drains this instance.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: waiting %d seconds to let the LB remove this instance from active targets",
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

// New creates a new web service with the given configuration. The
// invalidation registry is constructed once by the daemon and shared with
// every request path that needs it.
func New(cfg *config.Config, invalidated *auth.InvalidationSet) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if invalidated == nil {
		panic("invalidation registry cannot be nil")
	}

	portalType := portal.Type(cfg.Portal.Type)
	portalInfo := portal.InfoFor(portalType)
	staticDir := portal.StaticDir(portalType, cfg.Portal.StaticDir)

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:    cfg.Log,
		HealthURI: health.Path,
	}))

	service := &Service{
		cfg:         cfg,
		App:         app,
		invalidated: invalidated,
	}
	service.alive.Store(true)

	// endpoints shared by every portal flavor
	logout.Handler.Init(app, cfg, portalInfo, invalidated, staticDir)
	health.Handler.Init(app, cfg, portalInfo, invalidated, staticDir,
		oidchandler.Handler.Configured, service.alive.Load)
	info.Handler.Init(app, cfg, portalInfo, staticDir)

	if portalType.IsAdmin() {
		initAdminPortal(app, cfg, portalInfo, invalidated)
	} else {
		initSPAPortal(app, portalInfo, staticDir, cfg.Webserver.BrowseStatic)
	}

	return service
}

// initAdminPortal wires the server-rendered admin dashboard: embedded static
// assets, the authentication guard and the OIDC login flow.
func initAdminPortal(app *fiber.App, cfg *config.Config, portalInfo portal.Info, invalidated *auth.InvalidationSet) {
	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// authentication guard; every route below passes through it
	app.Use(authmiddleware.Middleware(invalidated))

	if err := login.Handler.Init(app, cfg, portalInfo); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	oidchandler.Handler.Init(app, cfg, portalInfo, invalidated)
	dashboard.Handler.Init(app, cfg, portalInfo)

	// root: authenticated users land on the dashboard, the guard sends
	// everyone else to the login page first.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path)
	})
}

// initSPAPortal serves the static single-page portal. Session handling
// happens client-side; the server only hands out files.
func initSPAPortal(app *fiber.App, portalInfo portal.Info, staticDir string, browse bool) {
	log.Info().Str("portal", portalInfo.Name).Str("static_dir", staticDir).Msg("serving SPA portal")

	// registered after all routes so /logout, /health and /info keep
	// precedence over the file tree
	app.Use("/", filesystem.New(
		filesystem.Config{
			Root:   http.Dir(staticDir),
			Index:  "index.html",
			Browse: browse,
		},
	))
}
