package api

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/playverse/gamestore/docs"
	"github.com/playverse/gamestore/internal/api/handler"
	"github.com/playverse/gamestore/internal/api/middleware"
	"github.com/playverse/gamestore/internal/core/access"
	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/service"
	mongostore "github.com/playverse/gamestore/internal/infrastructure/db/mongo"
	redisstore "github.com/playverse/gamestore/internal/infrastructure/db/redis"
	"github.com/playverse/gamestore/internal/infrastructure/mail"
	"github.com/playverse/gamestore/internal/pkg/config"
	"github.com/playverse/gamestore/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Dependencies are the wired middleware and handlers the server mounts.
type Dependencies struct {
	Sessions     *middleware.Sessions
	Flashes      *middleware.Flashes
	Policy       *access.Policy
	Auth         *handler.AuthHandler
	Reset        *handler.PasswordResetHandler
	Pages        *handler.PageHandler
	Games        *handler.GameHandler
	Carts        *handler.CartHandler
	Reservations *handler.ReservationHandler
	Health       *handler.HealthHandler
}

// Options tunes server-wide behaviour. Nil Prometheus fields fall back to the
// default registry.
type Options struct {
	Log        zerolog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	StaticDir  string
	MediaDir   string
}

// NewRouter wires repositories, services and handlers on top of the given
// connections and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	// --- Repositories ---
	users := mongostore.NewUserRepository(db)
	tokenRepo := mongostore.NewResetTokenRepository(db)
	gameRepo := mongostore.NewGameRepository(db)
	cartRepo := mongostore.NewCartRepository(db)
	reservationRepo := mongostore.NewReservationRepository(db)
	revocations := redisstore.NewSessionRevocations(rdb)
	flashStore := redisstore.NewFlashStore(rdb, cfg.Session.FlashTTL)

	// --- Services ---
	credentials := service.NewCredentialService(users, logger.Component(log, "credentials"))
	tokens := service.NewTokenStore(tokenRepo, users, credentials, cfg.Reset.TokenTTL, logger.Component(log, "reset_tokens"))
	mailer := mail.New(cfg.Mail.Mode, mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Timeout:  cfg.Mail.Timeout,
	}, logger.Component(log, "mail"))
	resets := service.NewPasswordResetService(users, tokens, mailer, logger.Component(log, "password_reset"))
	sessionSvc := service.NewSessionService(cfg.Session.Secret, cfg.Session.TTL, revocations, logger.Component(log, "sessions"))
	games := service.NewGameService(gameRepo, logger.Component(log, "games"))
	carts := service.NewCartService(cartRepo, gameRepo, logger.Component(log, "carts"))
	reservations := service.NewReservationService(reservationRepo, logger.Component(log, "reservations"))
	dashboard := service.NewDashboardService(gameRepo, users, reservationRepo)

	// --- HTTP ---
	flashes := middleware.NewFlashes(flashStore, cfg.Secure(), logger.Component(log, "flash"))
	sessions := middleware.NewSessions(sessionSvc, cfg.Session.CookieName, cfg.Secure(), logger.Component(log, "sessions"))

	deps := Dependencies{
		Sessions:     sessions,
		Flashes:      flashes,
		Policy:       access.NewPolicy(access.DefaultConfig()),
		Auth:         handler.NewAuthHandler(credentials, sessions, flashes),
		Reset:        handler.NewPasswordResetHandler(resets, tokens, flashes, cfg.BaseURL),
		Pages:        handler.NewPageHandler(games, dashboard, flashes),
		Games:        handler.NewGameHandler(games, flashes),
		Carts:        handler.NewCartHandler(carts, flashes),
		Reservations: handler.NewReservationHandler(reservations, flashes),
		Health: handler.NewHealthHandler(
			handler.DependencyCheck{Name: "mongodb", Ping: func(ctx context.Context) error {
				return db.Client().Ping(ctx, nil)
			}},
			handler.DependencyCheck{Name: "redis", Ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}},
		),
	}

	return NewServer(deps, Options{Log: log, StaticDir: "web/static", MediaDir: "web/media"})
}

// NewServer builds the Echo instance and mounts every route on deps.
func NewServer(deps Dependencies, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Flashes, opts.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.AddTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		RedirectCode: 301,
		Skipper:      skipTrailingSlash,
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: opts.Registerer,
	}))
	e.Use(echomiddleware.ContextTimeout(requestTimeout))
	e.Use(deps.Sessions.Middleware())
	e.Use(middleware.Gate(deps.Policy, deps.Flashes, logger.Component(opts.Log, "gate")))

	mountPages(e, deps)
	mountAccounts(e, deps)
	mountPasswordReset(e, deps)
	mountGames(e, deps)
	mountCart(e, deps)
	mountReservations(e, deps)

	// --- Probes, metrics, docs, assets ---
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.StaticDir != "" {
		e.Static("/static", opts.StaticDir)
	}
	if opts.MediaDir != "" {
		e.Static("/media", opts.MediaDir)
	}

	// Catch-all game detail page; every static route above takes precedence.
	e.GET("/:slug/", deps.Pages.GameDetail)

	return e
}

func mountPages(e *echo.Echo, deps Dependencies) {
	e.GET("/", deps.Pages.Home)
	e.GET("/actividades/", deps.Pages.Activities)
	e.GET("/ofertas/", deps.Pages.Offers)
	e.GET("/reservas/", deps.Pages.Reservations)
	e.GET("/administracion/", deps.Pages.Administration)
	for _, cat := range domain.Categories {
		e.GET("/"+string(cat)+"/", deps.Pages.Category(cat))
	}
}

func mountAccounts(e *echo.Echo, deps Dependencies) {
	e.GET("/login/", deps.Auth.LoginPage)
	e.POST("/login/", deps.Auth.Login)
	e.GET("/registro/", deps.Auth.RegisterPage)
	e.POST("/registro/", deps.Auth.Register)
	e.Match([]string{"GET", "POST"}, "/logout/", deps.Auth.Logout)
	e.GET("/perfil/", deps.Auth.Profile)
}

func mountPasswordReset(e *echo.Echo, deps Dependencies) {
	g := e.Group("/password-reset")
	g.GET("/", deps.Reset.RequestPage)
	g.POST("/", deps.Reset.Request)
	g.GET("/done/", deps.Reset.Done)
	g.GET("/confirm/:token/", deps.Reset.ConfirmPage)
	g.POST("/confirm/:token/", deps.Reset.Confirm)
	g.GET("/complete/", deps.Reset.Complete)
}

func mountGames(e *echo.Echo, deps Dependencies) {
	for _, prefix := range []string{"/juegos", "/admin/juegos"} {
		g := e.Group(prefix)
		g.GET("/", deps.Games.List)
		g.GET("/crear/", deps.Games.CreatePage)
		g.POST("/crear/", deps.Games.Create)
		g.GET("/editar/:id/", deps.Games.EditPage)
		g.POST("/editar/:id/", deps.Games.Edit)
		g.GET("/eliminar/:id/", deps.Games.DeletePage)
		g.POST("/eliminar/:id/", deps.Games.Delete)
	}
}

func mountCart(e *echo.Echo, deps Dependencies) {
	g := e.Group("/carrito")
	g.GET("/", deps.Carts.View)
	g.Match([]string{"GET", "POST"}, "/agregar/:game_id/", deps.Carts.Add)
	g.POST("/actualizar/:item_id/", deps.Carts.Update)
	g.Match([]string{"GET", "POST"}, "/eliminar/:item_id/", deps.Carts.Remove)
}

func mountReservations(e *echo.Echo, deps Dependencies) {
	g := e.Group("/reservas")
	g.GET("/lista/", deps.Reservations.List)
	g.GET("/crear/", deps.Reservations.CreatePage)
	g.POST("/crear/", deps.Reservations.Create)
	g.GET("/cancelar/:id/", deps.Reservations.CancelPage)
	g.POST("/cancelar/:id/", deps.Reservations.Cancel)
}

// requestLogger feeds echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func skipTrailingSlash(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range []string{"/health", "/metrics", "/swagger", "/static", "/media"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
