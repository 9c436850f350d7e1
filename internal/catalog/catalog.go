// Package catalog serves the static travel data the booking flows search.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"github.com/spf13/afero"
)

//go:embed data/*.json
var embedded embed.FS

const (
	flightsFile      = "flights.json"
	busesFile        = "buses.json"
	destinationsFile = "destinations.json"
	dealsFile        = "deals.json"
)

// Catalog holds the current data set. It is safe for concurrent use and can
// be reloaded in place.
type Catalog struct {
	mu           sync.RWMutex
	flights      []Flight
	buses        []Bus
	destinations []Destination
	deals        []Deal
}

// EmbeddedFs exposes the built-in data files.
func EmbeddedFs() afero.Fs {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}

// Default loads the built-in data set.
func Default() (*Catalog, error) {
	return Load(EmbeddedFs(), ".")
}

// Load reads the catalog files from dir on fsys.
func Load(fsys afero.Fs, dir string) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Reload(fsys, dir); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the data with the files in dir. On error the current data
// is kept.
func (c *Catalog) Reload(fsys afero.Fs, dir string) error {
	var (
		flights      []Flight
		buses        []Bus
		destinations []Destination
		deals        []Deal
	)
	if err := errors.Join(
		readJSON(fsys, path.Join(dir, flightsFile), &flights),
		readJSON(fsys, path.Join(dir, busesFile), &buses),
		readJSON(fsys, path.Join(dir, destinationsFile), &destinations),
		readJSON(fsys, path.Join(dir, dealsFile), &deals),
	); err != nil {
		return fmt.Errorf("load catalog from %s: %w", dir, err)
	}

	c.mu.Lock()
	c.flights, c.buses, c.destinations, c.deals = flights, buses, destinations, deals
	c.mu.Unlock()

	slog.Debug("Catalog loaded", "dir", dir,
		"flights", len(flights), "buses", len(buses), "destinations", len(destinations), "deals", len(deals))
	return nil
}

func readJSON(fsys afero.Fs, name string, dst any) error {
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Flights returns a copy of all flights.
func (c *Catalog) Flights() []Flight {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Flight(nil), c.flights...)
}

// Buses returns a copy of all buses.
func (c *Catalog) Buses() []Bus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Bus(nil), c.buses...)
}

func (c *Catalog) Destinations() []Destination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Destination(nil), c.destinations...)
}

func (c *Catalog) Deals() []Deal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Deal(nil), c.deals...)
}

// Destination finds a destination by name, ignoring case.
func (c *Catalog) Destination(name string) (Destination, bool) {
	slug := Slug(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.destinations {
		if d.Slug() == slug {
			return d, true
		}
	}
	return Destination{}, false
}
