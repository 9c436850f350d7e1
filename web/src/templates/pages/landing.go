package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Landing is the public front page.
func Landing() g.Node {
	return h.Section(
		h.Class("text-center py-24"),
		h.H1(h.Class("text-5xl font-extrabold mb-6"), g.Text("Travel smarter with ZippyTrip")),
		h.P(h.Class("text-xl text-gray-400 mb-10"), g.Text("Stays, flights and bus rentals across Nepal and beyond.")),
		h.Div(
			h.Class("space-x-4"),
			h.A(h.Href("/auth?mode=signup"), h.Class("bg-blue-600 hover:bg-blue-500 px-6 py-3 rounded-full font-semibold"), g.Text("Get started")),
			h.A(h.Href("/auth?mode=login"), h.Class("bg-gray-700 hover:bg-gray-600 px-6 py-3 rounded-full"), g.Text("Sign in")),
		),
	)
}
