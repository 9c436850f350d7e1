package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// TicketStore lists issued tickets.
type TicketStore struct {
	db           *surrealdb.DB
	queryTimeout time.Duration
}

func NewTicketStore(db *surrealdb.DB, queryTimeout time.Duration) *TicketStore {
	return &TicketStore{db: db, queryTimeout: queryTimeout}
}

var _ domain.TicketRepository = (*TicketStore)(nil)

// ListTickets returns the user's tickets, newest first.
func (s *TicketStore) ListTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	if userID == "" {
		return nil, NewDBError("list tickets", ErrInvalidInput)
	}
	ctx, cancel := getTimeoutFromContext(ctx, s.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()

	query := "SELECT * FROM tickets WHERE user_id = $user_id ORDER BY created_at DESC"
	tickets, err := Query[domain.Ticket](ctx, s.db, query, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}
