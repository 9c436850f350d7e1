package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/view"
	"github.com/nfrund/zippytrip/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

// page wraps content in the base layout with the pending flashes and the
// identity the gate decided with.
func page(c echo.Context, status int, title string, content g.Node) error {
	return c.Render(status, "", layouts.Base(title, view.GetFlashData(c), middleware.IdentityFrom(c), content))
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}
