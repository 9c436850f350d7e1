package pages

import (
	"fmt"

	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/view/dto"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Main is the signed-in home page: deals, popular destinations and the
// trip planner teaser.
func Main(data dto.Main) g.Node {
	return h.Div(
		h.Class("space-y-12"),
		h.H1(h.Class("text-3xl font-bold"), g.Text("Welcome, "+data.Identity.Email)),
		h.Section(
			h.H2(h.Class("text-2xl font-bold mb-6"), g.Text("Deals & Promotions")),
			h.Div(h.Class("grid grid-cols-1 md:grid-cols-2 gap-6"), g.Map(data.Deals, dealCard)),
		),
		h.Section(
			h.H2(h.Class("text-2xl font-bold mb-6"), g.Text("Popular Destinations")),
			h.Div(h.Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"), g.Map(data.Destinations, destinationCard)),
		),
		card(
			h.Div(h.Class("flex justify-between items-center"),
				h.Div(
					h.H3(h.Class("text-xl font-semibold"), g.Text("Plan Your Trip")),
					h.P(h.Class("text-gray-400 mt-2"), g.Text("Get personalized travel plans with ease!")),
				),
				h.A(h.Href("/flight-booking"), h.Class("bg-blue-600 px-4 py-2 rounded-full hover:bg-blue-500"), g.Text("Get Started")),
			),
		),
	)
}

func dealCard(d catalog.Deal) g.Node {
	return h.Div(
		h.Class("bg-gray-800 rounded-lg shadow-md p-6 border border-gray-700 flex items-start justify-between"),
		h.Div(
			h.H3(h.Class("text-lg font-semibold"), g.Text(d.Title)),
			h.P(h.Class("text-gray-400 mt-1"), g.Text(d.Description)),
			h.P(h.Class("text-sm text-gray-500 mt-2"), g.Text(d.ValidUntil)),
		),
		h.Span(h.Class("bg-red-900/50 text-red-400 px-3 py-1 rounded-full"), g.Text(d.Discount)),
	)
}

func destinationCard(d catalog.Destination) g.Node {
	return h.A(
		h.Href("/destination/"+d.Slug()),
		h.Class("bg-gray-800 rounded-lg shadow-md overflow-hidden hover:-translate-y-1 transition-all"),
		h.Img(h.Src(d.Image), h.Alt(d.DisplayName()), h.Class("w-full h-48 object-cover")),
		h.Div(h.Class("p-4"),
			h.H3(h.Class("text-lg font-semibold"), g.Text(d.DisplayName())),
			h.P(h.Class("text-gray-400 mt-1"), g.Text(d.Description)),
			h.P(h.Class("text-sm text-gray-500 mt-2"), g.Text(fmt.Sprintf("%.1f ★ · %d properties", d.Rating, d.Properties))),
		),
	)
}
