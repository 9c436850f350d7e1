package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type BookingType string

const (
	BookingFlight BookingType = "flight"
	BookingBus    BookingType = "bus"
	BookingHotel  BookingType = "hotel"
)

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket is an issued booking as listed under "My Tickets".
type Ticket struct {
	ID            *surrealmodels.RecordID       `json:"id,omitempty"`
	UserID        string                        `json:"user_id"`
	BookingType   BookingType                   `json:"booking_type"`
	BookingNumber string                        `json:"booking_number"`
	Status        TicketStatus                  `json:"status"`
	CreatedAt     *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// TicketRepository lists a user's tickets. Tickets are issued elsewhere.
type TicketRepository interface {
	ListTickets(ctx context.Context, userID string) ([]Ticket, error)
}
