package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const inputClass = "w-full px-4 py-2 rounded-lg bg-gray-700 border border-gray-600 focus:border-blue-500 focus:outline-none"

// field renders a labelled text input.
func field(label, name, typ, value string, required bool) g.Node {
	return h.Div(
		h.Class("space-y-1"),
		h.Label(h.For(name), h.Class("block text-sm font-medium text-gray-300"), g.Text(label)),
		h.Input(
			h.ID(name), h.Name(name), h.Type(typ), h.Value(value),
			h.Class(inputClass),
			g.If(required, h.Required()),
		),
	)
}

func hidden(name, value string) g.Node {
	return h.Input(h.Type("hidden"), h.Name(name), h.Value(value))
}

func submit(label string) g.Node {
	return h.Button(
		h.Type("submit"),
		h.Class("w-full bg-blue-600 hover:bg-blue-500 text-white font-semibold py-2 rounded-lg"),
		g.Text(label),
	)
}

func card(children ...g.Node) g.Node {
	return h.Div(append([]g.Node{h.Class("bg-gray-800 rounded-xl shadow-lg p-6 md:p-8")}, children...)...)
}
