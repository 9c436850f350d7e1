package pages

import (
	"fmt"

	"github.com/nfrund/zippytrip/internal/catalog"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Destination is the detail page of a popular destination.
func Destination(d catalog.Destination) g.Node {
	return h.Article(
		h.Class("space-y-6"),
		h.Img(h.Src(d.Image), h.Alt(d.DisplayName()), h.Class("w-full h-72 object-cover rounded-xl")),
		h.H1(h.Class("text-4xl font-bold"), g.Text(d.DisplayName())),
		h.P(h.Class("text-gray-400"), g.Text(d.Description)),
		h.P(h.Class("text-sm text-gray-500"), g.Text(fmt.Sprintf("Rated %.1f across %d properties", d.Rating, d.Properties))),
		g.If(len(d.Highlights) > 0, h.Ul(h.Class("list-disc list-inside space-y-1"),
			g.Map(d.Highlights, func(s string) g.Node { return h.Li(g.Text(s)) }),
		)),
		h.Div(h.Class("space-x-4"),
			h.A(h.Href("/flight-booking"), h.Class("bg-blue-600 px-4 py-2 rounded-full"), g.Text("Find flights")),
			h.A(h.Href("/bus-rentals"), h.Class("bg-gray-700 px-4 py-2 rounded-full"), g.Text("Find buses")),
		),
	)
}

// DestinationNotFound is shown for names missing from the catalog.
func DestinationNotFound(name string) g.Node {
	return card(
		h.H1(h.Class("text-2xl font-semibold"), g.Text("We don't know "+name+" yet")),
		h.A(h.Href("/main"), h.Class("text-blue-400 hover:underline"), g.Text("Back to popular destinations")),
	)
}
