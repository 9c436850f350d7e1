package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticket struct {
	id    string
	price float64
}

func (t ticket) ItemID() string     { return t.id }
func (t ticket) UnitPrice() float64 { return t.price }

func items() []ticket {
	return []ticket{{"1", 549}, {"2", 489}, {"3", 599}}
}

var contact = Contact{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}

func TestFlow_HappyPathAndAutoReset(t *testing.T) {
	f := NewFlow(items, 50*time.Millisecond)
	assert.Equal(t, StepSearch, f.Step())

	require.NoError(t, f.Search(Criteria{From: "A", To: "B", Passengers: 2}))
	d := f.Snapshot()
	assert.Equal(t, StepResults, d.Step)
	assert.Equal(t, Criteria{From: "A", To: "B", Passengers: 2}, d.Criteria)
	assert.Len(t, d.Results, 3, "results are the full static list")

	require.NoError(t, f.Select("3"))
	d = f.Snapshot()
	assert.Equal(t, StepBooking, d.Step)
	require.NotNil(t, d.Selected)
	assert.Equal(t, "3", (*d.Selected).ItemID())
	assert.Equal(t, 1198.0, d.Total())

	ref, err := f.Confirm(contact)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "ZT-"))
	assert.Len(t, ref, 3+referenceLength)
	assert.Equal(t, StepConfirmation, f.Step())

	assert.Eventually(t, func() bool { return f.Step() == StepSearch }, time.Second, 10*time.Millisecond)
	d = f.Snapshot()
	assert.Nil(t, d.Selected)
	assert.Empty(t, d.Criteria.From)
	assert.Empty(t, d.Reference)
}

func TestFlow_SearchRequiresOriginAndDestination(t *testing.T) {
	f := NewFlow(items, time.Second)

	assert.ErrorIs(t, f.Search(Criteria{From: "A"}), ErrEmptyCriteria)
	assert.ErrorIs(t, f.Search(Criteria{From: "  ", To: "B"}), ErrEmptyCriteria)
	assert.Equal(t, StepSearch, f.Step())
}

func TestFlow_InvalidTransitions(t *testing.T) {
	f := NewFlow(items, time.Second)

	assert.ErrorIs(t, f.Select("1"), ErrInvalidTransition)
	_, err := f.Confirm(contact)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, f.Back(), ErrInvalidTransition)

	require.NoError(t, f.Search(Criteria{From: "A", To: "B"}))
	assert.ErrorIs(t, f.Search(Criteria{From: "A", To: "B"}), ErrInvalidTransition)
}

func TestFlow_SelectUnknownItem(t *testing.T) {
	f := NewFlow(items, time.Second)
	require.NoError(t, f.Search(Criteria{From: "A", To: "B"}))

	assert.ErrorIs(t, f.Select("99"), ErrItemNotFound)
	assert.Equal(t, StepResults, f.Step())
}

func TestFlow_ConfirmRequiresContact(t *testing.T) {
	f := NewFlow(items, time.Second)
	require.NoError(t, f.Search(Criteria{From: "A", To: "B"}))
	require.NoError(t, f.Select("1"))

	_, err := f.Confirm(Contact{FullName: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrIncompleteContact)
	assert.Equal(t, StepBooking, f.Step())
}

func TestFlow_Back(t *testing.T) {
	f := NewFlow(items, time.Second)
	require.NoError(t, f.Search(Criteria{From: "A", To: "B", Date: "2025-06-01"}))
	require.NoError(t, f.Select("2"))

	require.NoError(t, f.Back())
	d := f.Snapshot()
	assert.Equal(t, StepResults, d.Step)
	assert.Nil(t, d.Selected)

	require.NoError(t, f.Back())
	d = f.Snapshot()
	assert.Equal(t, StepSearch, d.Step)
	assert.Equal(t, "A", d.Criteria.From, "modify search keeps the criteria")
}

func TestFlow_DiscardCancelsPendingReset(t *testing.T) {
	f := NewFlow(items, 30*time.Millisecond)
	require.NoError(t, f.Search(Criteria{From: "A", To: "B"}))
	require.NoError(t, f.Select("1"))
	_, err := f.Confirm(contact)
	require.NoError(t, err)

	f.Discard()
	require.NoError(t, f.Search(Criteria{From: "C", To: "D"}))

	// The old timer must not wipe the new draft.
	time.Sleep(80 * time.Millisecond)
	d := f.Snapshot()
	assert.Equal(t, StepResults, d.Step)
	assert.Equal(t, "C", d.Criteria.From)
}

func TestFlow_DefaultsPassengersToOne(t *testing.T) {
	f := NewFlow(items, time.Second)
	require.NoError(t, f.Search(Criteria{From: "A", To: "B"}))
	require.NoError(t, f.Select("2"))

	d := f.Snapshot()
	assert.Equal(t, 1, d.Criteria.Passengers)
	assert.Equal(t, 489.0, d.Total())
}
