package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// PreferenceStore reads and writes user_preferences on the root connection.
type PreferenceStore struct {
	db             *surrealdb.DB
	queryTimeout   time.Duration
	executeTimeout time.Duration
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(db *surrealdb.DB, queryTimeout, executeTimeout time.Duration) *PreferenceStore {
	return &PreferenceStore{db: db, queryTimeout: queryTimeout, executeTimeout: executeTimeout}
}

var _ domain.PreferenceRepository = (*PreferenceStore)(nil)

// FindPreferences returns the onboarding record of userID, or ErrNotFound.
func (s *PreferenceStore) FindPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	if userID == "" {
		return nil, NewDBError("find preferences", ErrInvalidInput)
	}
	ctx, cancel := getTimeoutFromContext(ctx, s.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()

	query := "SELECT * FROM user_preferences WHERE user_id = $user_id"
	prefs, err := QueryOne[domain.Preferences](ctx, s.db, query, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	if prefs == nil {
		return nil, NewDBError("find preferences", ErrNotFound)
	}
	return prefs, nil
}

// SavePreferences creates or replaces the onboarding record of prefs.UserID.
func (s *PreferenceStore) SavePreferences(ctx context.Context, prefs *domain.Preferences) (*domain.Preferences, error) {
	if prefs == nil || prefs.UserID == "" {
		return nil, NewDBError("save preferences", ErrInvalidInput)
	}
	ctx, cancel := getTimeoutFromContext(ctx, s.executeTimeout, ContextKeyExecuteTimeout)
	defer cancel()

	interests := prefs.Interests
	if interests == nil {
		interests = []string{}
	}
	params := map[string]any{
		"key":          preferenceKey(prefs.UserID),
		"user_id":      prefs.UserID,
		"travel_style": prefs.TravelStyle,
		"budget":       prefs.Budget,
		"interests":    interests,
	}
	query := `UPSERT type::thing('user_preferences', $key) SET
		user_id = $user_id,
		travel_style = $travel_style,
		budget = $budget,
		interests = $interests`
	if prefs.HomeCity != "" {
		params["home_city"] = prefs.HomeCity
		query += ",\n\t\thome_city = $home_city"
	}
	query += " RETURN AFTER"

	saved, err := QueryOne[domain.Preferences](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	if saved == nil {
		return nil, NewDBError("save preferences", ErrQueryFailed).WithQuery(query)
	}
	return saved, nil
}

// preferenceKey derives the record key from a user record id ("user:abc" -> "abc").
func preferenceKey(userID string) string {
	if i := strings.IndexByte(userID, ':'); i >= 0 && i < len(userID)-1 {
		return strings.Trim(userID[i+1:], "⟨⟩`")
	}
	return userID
}
