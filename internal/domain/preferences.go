package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Preferences is the onboarding record of a user. Its existence is what marks
// onboarding as complete.
type Preferences struct {
	ID          *surrealmodels.RecordID `json:"id,omitempty"`
	UserID      string                  `json:"user_id"`
	TravelStyle string                  `json:"travel_style"`
	Budget      string                  `json:"budget"`
	Interests   []string                `json:"interests"`
	HomeCity    string                  `json:"home_city,omitempty"`
}

// PreferenceRepository stores onboarding preferences.
type PreferenceRepository interface {
	// FindPreferences returns ErrNotFound when the user has no record.
	FindPreferences(ctx context.Context, userID string) (*Preferences, error)
	SavePreferences(ctx context.Context, prefs *Preferences) (*Preferences, error)
}
