package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptMessage(t *testing.T) {
	msg, err := Receipt{
		Reference:  "ZT-ABC123",
		Kind:       "Flight",
		Carrier:    "Buddha Air",
		From:       "A",
		To:         "B",
		Passengers: 2,
		Total:      300,
		Name:       "Ada <Lovelace>",
		Email:      "ada@example.com",
	}.Message()
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Your ZippyTrip Flight booking ZT-ABC123", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Ada &lt;Lovelace&gt;,")
	assert.Contains(t, msg.HTML, "<td>A to B</td>")
	assert.Contains(t, msg.HTML, "<td>Flexible</td>")
	assert.Contains(t, msg.HTML, "<td>$300.00</td>")
}

func TestResendSender(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	s := &ResendSender{APIKey: "key", From: "ZippyTrip <bookings@example.com>", Endpoint: srv.URL}
	err := s.Send(context.Background(), Message{To: "ada@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key", auth)
	assert.Equal(t, resendPayload{From: "ZippyTrip <bookings@example.com>", To: "ada@example.com", Subject: "Hi", HTML: "<p>x</p>"}, got)
}

func TestResendSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	t.Cleanup(srv.Close)

	s := &ResendSender{APIKey: "key", Endpoint: srv.URL}
	err := s.Send(context.Background(), Message{To: "ada@example.com"})
	assert.ErrorContains(t, err, "status 422")
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("log", "", "from@example.com")
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = NewSender("resend", "key", "from@example.com")
	require.NoError(t, err)
	assert.IsType(t, &ResendSender{}, s)

	_, err = NewSender("resend", "", "")
	assert.Error(t, err)

	_, err = NewSender("carrier-pigeon", "", "")
	assert.ErrorContains(t, err, "unknown email provider")
}
