package view

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	successClasses = "bg-green-900/50 text-green-300 border-green-700"
	errorClasses   = "bg-red-900/50 text-red-300 border-red-700"
)

// Flash renders the flash messages as dismissible alerts. Nothing is
// rendered when there are no messages.
func Flash(data FlashData) templ.Component {
	if data.Empty() {
		return AdaptGomponentToTempl(g.Group(nil))
	}
	return AdaptGomponentToTempl(h.Div(h.ID("flash"), h.Class("space-y-2 mb-4"),
		g.Map(data.Success, func(msg string) g.Node { return alert(successClasses, msg) }),
		g.Map(data.Error, func(msg string) g.Node { return alert(errorClasses, msg) }),
	))
}

func alert(classes, msg string) g.Node {
	return h.Div(g.Attr("role", "alert"), h.Class("border rounded-lg px-4 py-3 "+classes), g.Text(msg))
}
