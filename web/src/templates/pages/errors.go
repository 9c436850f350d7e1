package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Error is the generic error page.
func Error(code int, message string) g.Node {
	return h.Div(
		h.Class("text-center py-24"),
		h.H1(h.Class("text-6xl font-bold text-gray-600"), g.Textf("%d", code)),
		h.P(h.Class("mt-4 text-xl"), g.Text(message)),
		h.A(h.Href("/"), h.Class("mt-8 inline-block text-blue-400 hover:underline"), g.Text("Go home")),
	)
}
