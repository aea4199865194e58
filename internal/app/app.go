package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/repo/commerce"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/view"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	logger.MustInit(logger.Config{
		Level:       conf.Log.Level,
		Development: conf.Log.Development,
	})
	log := logger.MustNamed("app")
	log.Debugw("config loaded", log.Reflect("config", conf))

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Module,
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}

// Module provides the catalog client, the product list view and the HTTP
// handlers, and mounts the view for the lifetime of the app.
var Module = fx.Options(
	fx.Provide(
		commerce.NewClient,
		newCatalogClient,
		view.NewProductListView,
		newProductLister,
		server.NewHandler,
	),
	fx.Invoke(MountProductList),
)

// MountProductList mounts the view on start and unmounts it on stop, so the
// catalog is fetched exactly once per app run.
func MountProductList(lc fx.Lifecycle, v *view.ProductListView) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			v.Mount(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			v.Unmount()
			return nil
		},
	})
}
