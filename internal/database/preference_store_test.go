package database

import (
	"context"
	"testing"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceKey(t *testing.T) {
	assert.Equal(t, "abc123", preferenceKey("user:abc123"))
	assert.Equal(t, "abc", preferenceKey("user:⟨abc⟩"))
	assert.Equal(t, "plain", preferenceKey("plain"))
}

func TestPreferenceStore_InvalidInput(t *testing.T) {
	store := NewPreferenceStore(nil, 0, 0)

	_, err := store.FindPreferences(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = store.SavePreferences(context.Background(), &domain.Preferences{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPreferenceStore(t *testing.T) {
	db, cfg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	store := NewPreferenceStore(db, cfg.GetDBQueryTimeout(), cfg.GetDBExecuteTimeout())

	t.Run("not found before onboarding", func(t *testing.T) {
		_, err := store.FindPreferences(ctx, "user:nobody")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save then find", func(t *testing.T) {
		saved, err := store.SavePreferences(ctx, &domain.Preferences{
			UserID:      "user:traveller",
			TravelStyle: "adventure",
			Budget:      "mid",
			Interests:   []string{"hiking", "food"},
			HomeCity:    "Lisbon",
		})
		require.NoError(t, err)
		assert.NotNil(t, saved.ID)

		found, err := store.FindPreferences(ctx, "user:traveller")
		require.NoError(t, err)
		assert.Equal(t, "adventure", found.TravelStyle)
		assert.ElementsMatch(t, []string{"hiking", "food"}, found.Interests)
	})

	t.Run("saving again replaces the record", func(t *testing.T) {
		_, err := store.SavePreferences(ctx, &domain.Preferences{UserID: "user:traveller", TravelStyle: "relaxed", Budget: "low"})
		require.NoError(t, err)

		found, err := store.FindPreferences(ctx, "user:traveller")
		require.NoError(t, err)
		assert.Equal(t, "relaxed", found.TravelStyle)
	})
}
