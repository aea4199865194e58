package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	log "github.com/nguyentranbao-ct/storefront/pkg/logger/logctx"
)

func NewEcho(conf *config.Config, handler Controller) (*echo.Echo, error) {
	httpLog := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(httpLog)

	cors, err := conf.Server.CORSPattern()
	if err != nil {
		return nil, err
	}

	logConfig := pkgmdw.LogRequestConfig{
		Logger: httpLog,
		Enabled: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path != "/health" && path != "/metrics"
		},
		QueryParams: func(c echo.Context) bool {
			return true
		},
	}

	e.Use(pkgmdw.Metrics())
	if conf.Server.StatsdAddress != "" {
		e.Use(pkgmdw.ProfilerWithConfig(pkgmdw.ProfilerConfig{
			Address: conf.Server.StatsdAddress,
			Service: "storefront",
			Log:     httpLog,
		}))
	}
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))

	e.GET("/", handler.Index)
	e.GET("/health", handler.Health)

	api := e.Group("/api/v1", pkgmdw.CORS(cors))
	api.GET("/products", pkgmdw.WrapHandler(handler.ListProducts))
	api.OPTIONS("/products", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	if conf.Server.PprofEnabled {
		pkgmdw.PprofWrap(e)
	}

	return e, nil
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
) error {
	e, err := NewEcho(conf, handler)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := conf.Server.Addr()
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", addr)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(ctx, "HTTP server stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return nil
}
