package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/rendering"
	"github.com/nfrund/zippytrip/internal/view"
	"github.com/nfrund/zippytrip/web/src/templates/layouts"
	"github.com/nfrund/zippytrip/web/src/templates/pages"
)

// setupErrorHandling renders every error as an HTML page. Errors that are not
// an *echo.HTTPError are unexpected and logged with a stack trace.
func setupErrorHandling(e *echo.Echo) {
	renderer := rendering.NewUniversalRenderer()

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		code := http.StatusInternalServerError
		message := "Something went wrong on our side. Please try again."
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if code < http.StatusInternalServerError {
				message = http.StatusText(code)
			}
		}

		switch {
		case he == nil:
			logger.Error("Internal Server Error (Unhandled)",
				"error", err, "path", c.Request().URL.Path, "stack_trace", string(debug.Stack()))
		case code >= http.StatusInternalServerError:
			logger.Error("Internal Server Error", "error", err, "internal", he.Internal, "path", c.Request().URL.Path)
		default:
			logger.Debug("Request failed", "status", code, "path", c.Request().URL.Path)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		page := layouts.Base(http.StatusText(code), view.FlashData{}, nil, pages.Error(code, message))
		if err := renderer.RenderPage(c, code, page); err != nil {
			logger.Error("Failed to render error page", "error", err)
		}
	}
}
