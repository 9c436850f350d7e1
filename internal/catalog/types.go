package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Flight is a scheduled flight offered by the flight-booking flow.
type Flight struct {
	ID             string   `json:"id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Departure      string   `json:"departure"`
	Arrival        string   `json:"arrival"`
	Price          float64  `json:"price"`
	Airline        string   `json:"airline"`
	Duration       string   `json:"duration"`
	Amenities      []string `json:"amenities"`
	SeatsAvailable int      `json:"seats_available"`
}

func (f Flight) ItemID() string     { return f.ID }
func (f Flight) UnitPrice() float64 { return f.Price }
func (f Flight) ItemLabel() string  { return f.Airline }

// Bus is a coach offered by the bus-rental flow.
type Bus struct {
	ID             string   `json:"id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Departure      string   `json:"departure"`
	Arrival        string   `json:"arrival"`
	Price          float64  `json:"price"`
	Operator       string   `json:"operator"`
	Duration       string   `json:"duration"`
	BusType        string   `json:"bus_type"`
	Amenities      []string `json:"amenities"`
	SeatsAvailable int      `json:"seats_available"`
}

func (b Bus) ItemID() string     { return b.ID }
func (b Bus) UnitPrice() float64 { return b.Price }
func (b Bus) ItemLabel() string  { return b.Operator }

// Destination is a featured place shown on the main page.
type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Properties  int      `json:"properties"`
	Highlights  []string `json:"highlights"`
}

var titleCaser = cases.Title(language.English)

// Slug is the path segment under /destination/.
func (d Destination) Slug() string { return Slug(d.Name) }

// DisplayName is the title-cased name.
func (d Destination) DisplayName() string { return titleCaser.String(d.Name) }

// Slug normalizes a destination name for lookups.
func Slug(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Deal is a promotion on the main page.
type Deal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Discount    string `json:"discount"`
	Description string `json:"description"`
	ValidUntil  string `json:"valid_until"`
}
