package middleware

import (
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

type PprofConfig struct {
	PathPrefix string
}

var DefaultPprofConfig = PprofConfig{
	PathPrefix: "",
}

// PprofWrap mounts the net/http/pprof handlers under PathPrefix/debug/pprof.
func PprofWrap(e *echo.Echo, opts ...PprofConfig) {
	conf := DefaultPprofConfig
	if len(opts) > 0 {
		conf.PathPrefix = opts[0].PathPrefix
	}

	g := e.Group(conf.PathPrefix + "/debug/pprof")
	g.GET("/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	g.GET("/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	g.GET("/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	g.GET("/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	g.GET("/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		g.GET("/"+name, echo.WrapHandler(pprof.Handler(name)))
	}
}
