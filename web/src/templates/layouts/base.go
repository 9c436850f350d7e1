package layouts

import (
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Base wraps page content in the document shell. identity is nil for
// signed-out visitors.
func Base(title string, flashes view.FlashData, identity *domain.Identity, content g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Script(h.Src("https://cdn.tailwindcss.com")),
			h.Script(h.Src("https://unpkg.com/htmx.org@2.0.4"), h.Defer()),
			h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			g.If(identity != nil, h.Script(h.Src("/static/js/session.js"), h.Defer())),
		},
		Body: []g.Node{
			h.Class("min-h-screen bg-gray-900 text-white"),
			hx.Boost("true"),
			navbar(identity),
			h.Main(
				h.ID("content"),
				h.Class("max-w-7xl mx-auto px-4 py-8"),
				view.AdaptTemplToGomponent(view.Flash(flashes)),
				content,
			),
		},
	})
}

func navbar(identity *domain.Identity) g.Node {
	return h.Header(
		h.Class("bg-gray-800 shadow-sm"),
		h.Nav(
			h.Class("max-w-7xl mx-auto px-4 py-4 flex items-center justify-between"),
			h.A(h.Href("/"), h.Class("text-2xl font-bold text-blue-400"), g.Text("ZippyTrip")),
			g.If(identity != nil, h.Div(
				h.Class("flex items-center space-x-4"),
				navLink("/main", "Stays"),
				navLink("/flight-booking", "Flights"),
				navLink("/bus-rentals", "Bus Rentals"),
				navLink("/tickets", "My Tickets"),
				h.Span(h.Class("text-sm text-gray-400"), g.Text(email(identity))),
				h.Form(
					h.Method("post"), h.Action("/auth/signout"),
					h.Button(h.Type("submit"), h.Class("px-3 py-1 rounded-full bg-gray-700 hover:bg-gray-600 text-sm"), g.Text("Sign out")),
				),
			)),
			g.If(identity == nil, navLink("/auth", "Sign in")),
		),
	)
}

func navLink(href, label string) g.Node {
	return h.A(h.Href(href), h.Class("text-gray-300 hover:text-white"), g.Text(label))
}

func email(identity *domain.Identity) string {
	if identity == nil {
		return ""
	}
	return identity.Email
}
