package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
)

// CORS allows cross-origin reads from origins matching pattern. A nil pattern
// disables it.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if pattern == nil {
				return next(c)
			}
			respHeader := c.Response().Header()
			respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" || !pattern.MatchString(origin) {
				return next(c)
			}
			respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			if c.Request().Method == http.MethodOptions {
				respHeader.Set(echo.HeaderAccessControlAllowHeaders, "*, "+XRequestID)
				respHeader.Set(echo.HeaderAccessControlAllowMethods, "OPTIONS, GET, HEAD")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
