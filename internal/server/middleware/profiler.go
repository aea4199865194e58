package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"gopkg.in/alexcesaro/statsd.v2"
)

type (
	ProfilerConfig struct {
		Skipper Skipper
		Address string
		Service string
		Log     Logger
	}
)

var DefaultProfilerConfig = ProfilerConfig{
	Skipper: DefaultSkipper,
	Address: ":8125",
	Service: "default",
}

func Profiler() echo.MiddlewareFunc {
	return ProfilerWithConfig(DefaultProfilerConfig)
}

// ProfilerWithConfig sends one statsd timing per request to
// response.<service>.<method>.<path>.<status>.
func ProfilerWithConfig(config ProfilerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultProfilerConfig.Skipper
	}
	if config.Address == "" {
		config.Address = DefaultProfilerConfig.Address
	}
	if config.Service == "" {
		config.Service = DefaultProfilerConfig.Service
	}

	opts := []statsd.Option{statsd.Address(config.Address)}
	if config.Log != nil {
		log := config.Log
		opts = append(opts, statsd.ErrorHandler(func(err error) {
			log.Warnw("statsd send failed", "error", err)
		}))
	}
	client, err := statsd.New(opts...)
	if err != nil {
		panic(err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			t := client.NewTiming()
			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if isNotFoundHandler(c.Handler()) {
				path = notFoundPath
			}
			bucket := fmt.Sprintf("response.%s.%s.%s.%d",
				config.Service, c.Request().Method, path, c.Response().Status)
			t.Send(strings.ToLower(bucket))

			return nil
		}
	}
}
