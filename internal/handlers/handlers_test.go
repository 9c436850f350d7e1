package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nfrund/zippytrip/internal/booking"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	assert.Equal(t, "signup", mode("signup"))
	assert.Equal(t, "login", mode("login"))
	assert.Equal(t, "login", mode(""))
	assert.Equal(t, "login", mode("reset"))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 3, seconds(3*time.Second))
	assert.Equal(t, 2, seconds(1500*time.Millisecond))
	assert.Equal(t, 1, seconds(0))
}

func TestBookingMessage(t *testing.T) {
	assert.Contains(t, bookingMessage(booking.ErrEmptyCriteria), "from and to")
	assert.Contains(t, bookingMessage(fmt.Errorf("%w: %q", booking.ErrItemNotFound, "x")), "not among your search results")
	assert.Contains(t, bookingMessage(booking.ErrIncompleteContact), "full name")
	assert.Contains(t, bookingMessage(booking.ErrInvalidTransition), "no longer available")
}

func confirmedFlight(t *testing.T) booking.Draft[catalog.Flight] {
	t.Helper()
	flights := []catalog.Flight{{ID: "3", Airline: "Yeti Airlines", Price: 150}}
	flow := booking.NewFlow(func() []catalog.Flight { return flights }, time.Minute)
	t.Cleanup(flow.Discard)

	require.NoError(t, flow.Search(booking.Criteria{From: "A", To: "B", Passengers: 2}))
	require.NoError(t, flow.Select("3"))
	_, err := flow.Confirm(booking.Contact{FullName: "Ada", Email: "ada@example.com", Phone: "555"})
	require.NoError(t, err)
	return flow.Snapshot()
}

func TestReceiptOf(t *testing.T) {
	d := confirmedFlight(t)

	r := receiptOf(d, "Flight")
	assert.Equal(t, d.Reference, r.Reference)
	assert.Equal(t, "Yeti Airlines", r.Carrier)
	assert.Equal(t, 2, r.Passengers)
	assert.Equal(t, 300.0, r.Total)
	assert.Equal(t, "ada@example.com", r.Email)
}

func TestSendReceipt(t *testing.T) {
	r := receiptOf(confirmedFlight(t), "Flight")

	outbox := &testutils.Outbox{}
	NewBookingHandler(outbox).sendReceipt(context.Background(), r)
	require.Len(t, outbox.Sent(), 1)
	assert.Contains(t, outbox.Sent()[0].HTML, "Yeti Airlines")

	failing := &testutils.Outbox{Err: errors.New("smtp down")}
	assert.NotPanics(t, func() { NewBookingHandler(failing).sendReceipt(context.Background(), r) })
	assert.Empty(t, failing.Sent())

	assert.NotPanics(t, func() { NewBookingHandler(nil).sendReceipt(context.Background(), r) })
}
