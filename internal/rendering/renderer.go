package rendering

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/middleware"
)

// Renderer renders templ components and gomponents nodes into HTTP
// responses. It also satisfies echo.Renderer.
type Renderer interface {
	RenderPage(c echo.Context, status int, component any) error
	Render(w io.Writer, name string, data any, c echo.Context) error
}

// UniversalRenderer renders both templ.Component and gomponents.Node values.
type UniversalRenderer struct{}

func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode matches gomponents.Node without importing it.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// RenderPage writes component as an HTML response with the given status.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)

	ctx := c.Request().Context()
	if err := r.render(ctx, component, c.Response()); err != nil {
		middleware.FromContext(ctx).Error("failed to render page", "path", c.Path(), "error", err)
		return err
	}
	return nil
}

// Render implements echo.Renderer; the component is passed as data.
func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
