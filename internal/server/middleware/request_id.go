package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/pkg/logger/logctx"
)

const XRequestID = "x-request-id"

// GetRequestID returns the id set by RequestID, or the incoming header when
// the middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(XRequestID).(string); ok && id != "" {
		return id
	}
	return c.Request().Header.Get(XRequestID)
}

type RequestIDConfig struct {
	Skipper   Skipper
	Generator func() string
}

var DefaultRequestIDConfig = RequestIDConfig{
	Skipper:   DefaultSkipper,
	Generator: uuid.NewString,
}

func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(DefaultRequestIDConfig)
}

// RequestIDWithConfig keeps the caller's x-request-id or generates one, echoes
// it in the response and adds it to the request context log fields.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultRequestIDConfig.Skipper
	}
	if config.Generator == nil {
		config.Generator = DefaultRequestIDConfig.Generator
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			reqID := c.Request().Header.Get(XRequestID)
			if reqID == "" {
				reqID = config.Generator()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(logctx.WithFields(req.Context(), "request_id", reqID)))
			c.Set(XRequestID, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}
