// Package booking implements the search, select and confirm wizard shared by
// the flight and bus flows.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Step is the position of a draft in the wizard.
type Step string

const (
	StepSearch       Step = "search"
	StepResults      Step = "results"
	StepBooking      Step = "booking"
	StepConfirmation Step = "confirmation"
)

// DefaultConfirmationDelay is how long the confirmation stays visible.
const DefaultConfirmationDelay = 3 * time.Second

var (
	ErrInvalidTransition = errors.New("action not allowed at this step")
	ErrEmptyCriteria     = errors.New("origin and destination are required")
	ErrItemNotFound      = errors.New("selected item is not among the results")
	ErrIncompleteContact = errors.New("full name, email and phone are required")
)

const (
	referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	referenceLength   = 8
)

// Item is anything the wizard can offer.
type Item interface {
	ItemID() string
	UnitPrice() float64
}

// Criteria is the search form.
type Criteria struct {
	From       string
	To         string
	Date       string
	Passengers int
}

// Contact is the booking form.
type Contact struct {
	FullName string
	Email    string
	Phone    string
}

func (c Contact) complete() bool {
	return strings.TrimSpace(c.FullName) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Phone) != ""
}

// Draft is the in-memory state of one booking. It is never persisted.
type Draft[T Item] struct {
	Step      Step
	Criteria  Criteria
	Results   []T
	Selected  *T
	Contact   Contact
	Reference string
}

// Total is the price of the selection for all passengers.
func (d Draft[T]) Total() float64 {
	if d.Selected == nil {
		return 0
	}
	passengers := d.Criteria.Passengers
	if passengers < 1 {
		passengers = 1
	}
	return (*d.Selected).UnitPrice() * float64(passengers)
}

// Flow is a single booking wizard. Methods are safe for concurrent use.
type Flow[T Item] struct {
	items func() []T
	delay time.Duration

	mu    sync.Mutex
	draft Draft[T]
	// gen invalidates scheduled resets when the draft moves on.
	gen   uint64
	timer *time.Timer
}

// NewFlow creates a flow over the list returned by items. A non-positive
// delay uses DefaultConfirmationDelay.
func NewFlow[T Item](items func() []T, delay time.Duration) *Flow[T] {
	if delay <= 0 {
		delay = DefaultConfirmationDelay
	}
	return &Flow[T]{
		items: items,
		delay: delay,
		draft: Draft[T]{Step: StepSearch},
	}
}

// Snapshot returns a copy of the current draft.
func (f *Flow[T]) Snapshot() Draft[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.Results = append([]T(nil), f.draft.Results...)
	if f.draft.Selected != nil {
		sel := *f.draft.Selected
		d.Selected = &sel
	}
	return d
}

// Step returns the current step.
func (f *Flow[T]) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Step
}

// Search runs the search form. Every item matches; there is no filtering.
func (f *Flow[T]) Search(c Criteria) error {
	c.From = strings.TrimSpace(c.From)
	c.To = strings.TrimSpace(c.To)
	if c.Passengers < 1 {
		c.Passengers = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.Step != StepSearch {
		return fmt.Errorf("search from %s: %w", f.draft.Step, ErrInvalidTransition)
	}
	if c.From == "" || c.To == "" {
		return ErrEmptyCriteria
	}
	f.draft.Criteria = c
	f.draft.Results = append([]T(nil), f.items()...)
	f.draft.Step = StepResults
	return nil
}

// Select picks one of the results.
func (f *Flow[T]) Select(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.Step != StepResults {
		return fmt.Errorf("select from %s: %w", f.draft.Step, ErrInvalidTransition)
	}
	for _, item := range f.draft.Results {
		if item.ItemID() == id {
			sel := item
			f.draft.Selected = &sel
			f.draft.Step = StepBooking
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotFound, id)
}

// Confirm books the selection and schedules the return to the search step.
func (f *Flow[T]) Confirm(contact Contact) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.Step != StepBooking {
		return "", fmt.Errorf("confirm from %s: %w", f.draft.Step, ErrInvalidTransition)
	}
	if !contact.complete() {
		return "", ErrIncompleteContact
	}

	ref, err := gonanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return "", fmt.Errorf("generate booking reference: %w", err)
	}
	f.draft.Contact = contact
	f.draft.Reference = "ZT-" + ref
	f.draft.Step = StepConfirmation

	f.gen++
	gen := f.gen
	f.stopTimer()
	f.timer = time.AfterFunc(f.delay, func() { f.expire(gen) })
	return f.draft.Reference, nil
}

func (f *Flow[T]) expire(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.reset()
}

// Back returns to the previous step: results to search, booking to results.
func (f *Flow[T]) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.draft.Step {
	case StepResults:
		f.draft.Step = StepSearch
		f.draft.Results = nil
	case StepBooking:
		f.draft.Step = StepResults
		f.draft.Selected = nil
	default:
		return fmt.Errorf("back from %s: %w", f.draft.Step, ErrInvalidTransition)
	}
	return nil
}

// Discard abandons the draft and any pending reset.
func (f *Flow[T]) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// Delay is the confirmation display time.
func (f *Flow[T]) Delay() time.Duration { return f.delay }

func (f *Flow[T]) reset() {
	f.gen++
	f.stopTimer()
	f.draft = Draft[T]{Step: StepSearch}
}

func (f *Flow[T]) stopTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
