package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const statusClientClosedRequest = 499

// ErrorHandler renders every handler error as a ResponseError.
// Internal error details are logged, not returned.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &ResponseError{
			Status:       http.StatusInternalServerError,
			Success:      false,
			Err:          err,
			ErrorCode:    "internal_error",
			ErrorMessage: http.StatusText(http.StatusInternalServerError),
		}

		var he *echo.HTTPError
		var re *ResponseError
		switch {
		case errors.As(err, &re):
			resp = re
		case errors.As(err, &he):
			resp.Status = he.Code
			resp.ErrorCode = errorCode(he.Code)
			resp.ErrorMessage = fmt.Sprint(he.Message)
		case errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled):
			resp.Status = statusClientClosedRequest
			resp.ErrorCode = "canceled"
			resp.ErrorMessage = "request canceled"
		}

		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}
		if resp.Status >= http.StatusInternalServerError {
			log.Errorw("request failed", "error", err, "uri", c.Request().RequestURI)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	case http.StatusGatewayTimeout:
		return "timeout"
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return "bad_request"
}
