// Package gate decides, for every page navigation, whether to render the page
// or redirect elsewhere.
package gate

import (
	"net/url"
	"strings"
)

// Page identifies a renderable page.
type Page string

const (
	PageLanding     Page = "landing"
	PageAuth        Page = "auth"
	PageOnboarding  Page = "onboarding"
	PageMain        Page = "main"
	PageDestination Page = "destination"
	PageBuses       Page = "bus-rentals"
	PageFlights     Page = "flight-booking"
	PageTickets     Page = "tickets"
)

// Paths of the pages.
const (
	PathLanding     = "/"
	PathAuth        = "/auth"
	PathOnboarding  = "/UserPreferences"
	PathMain        = "/main"
	PathDestination = "/destination/"
	PathBuses       = "/bus-rentals"
	PathFlights     = "/flight-booking"
	PathTickets     = "/tickets"
)

// Intent is one navigation: where the browser wants to go and what the
// session resolver knows.
type Intent struct {
	Path      string
	SignedIn  bool
	Onboarded bool
}

// Decision is the outcome of Evaluate. Exactly one of Render and Redirect is set.
type Decision struct {
	Render   bool
	Page     Page
	Redirect string
	// Param is the {name} segment of /destination/{name}.
	Param string
}

func render(p Page) Decision        { return Decision{Render: true, Page: p} }
func redirect(path string) Decision { return Decision{Redirect: path} }

// Evaluate maps an intent to a decision. It is a pure function.
func Evaluate(in Intent) Decision {
	page, param, ok := Match(in.Path)
	if !ok {
		return redirect(PathLanding)
	}

	if !Protected(page) {
		if in.SignedIn {
			return redirect(PathMain)
		}
		return render(page)
	}

	if !in.SignedIn {
		return redirect(PathAuth)
	}
	if page == PageOnboarding {
		if in.Onboarded {
			return redirect(PathMain)
		}
		return render(page)
	}
	if !in.Onboarded {
		return redirect(PathOnboarding)
	}
	d := render(page)
	d.Param = param
	return d
}

// Protected reports whether page requires a signed-in session.
func Protected(p Page) bool {
	return p != PageLanding && p != PageAuth
}

// Match resolves a request path to a page. Trailing slashes are ignored.
func Match(path string) (page Page, param string, ok bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	switch path {
	case PathLanding:
		return PageLanding, "", true
	case PathAuth:
		return PageAuth, "", true
	case PathOnboarding:
		return PageOnboarding, "", true
	case PathMain:
		return PageMain, "", true
	case PathBuses:
		return PageBuses, "", true
	case PathFlights:
		return PageFlights, "", true
	case PathTickets:
		return PageTickets, "", true
	}
	if rest, found := strings.CutPrefix(path, PathDestination); found {
		name, err := url.PathUnescape(rest)
		if err != nil || name == "" || strings.Contains(name, "/") {
			return "", "", false
		}
		return PageDestination, name, true
	}
	return "", "", false
}

// Rule is one row of the decision table, used for documentation and the CLI.
type Rule struct {
	Path      string
	SignedIn  bool
	Onboarded bool
	Decision  Decision
}

// Table evaluates every known path against every session state.
func Table() []Rule {
	paths := []string{
		PathLanding, PathAuth, PathOnboarding, PathMain, PathDestination + "kathmandu",
		PathBuses, PathFlights, PathTickets, "/unknown",
	}
	states := []struct{ signedIn, onboarded bool }{{false, false}, {true, false}, {true, true}}

	rules := make([]Rule, 0, len(paths)*len(states))
	for _, p := range paths {
		for _, s := range states {
			rules = append(rules, Rule{
				Path:      p,
				SignedIn:  s.signedIn,
				Onboarded: s.onboarded,
				Decision:  Evaluate(Intent{Path: p, SignedIn: s.signedIn, Onboarded: s.onboarded}),
			})
		}
	}
	return rules
}
