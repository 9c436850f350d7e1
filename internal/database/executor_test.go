package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasLimitClause(t *testing.T) {
	assert.True(t, hasLimitClause("SELECT * FROM user LIMIT 1"))
	assert.True(t, hasLimitClause("select * from user limit 5"))
	assert.False(t, hasLimitClause("SELECT * FROM user WHERE name = 'unlimited'"))
}

func TestQuery_NilDB(t *testing.T) {
	_, err := Query[map[string]any](context.Background(), nil, "SELECT * FROM user", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConnected)

	err = Execute(context.Background(), nil, "DELETE user", nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestDBError(t *testing.T) {
	err := NewDBError("find preferences", ErrNotFound).WithQuery("SELECT 1")

	assert.Contains(t, err.Error(), "find preferences")
	assert.Contains(t, err.Error(), "Query: SELECT 1")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))

	wrapped := errors.Join(errors.New("outer"), err)
	var dbErr *DBError
	require.True(t, errors.As(wrapped, &dbErr))
	assert.Equal(t, "find preferences", dbErr.Op)
}

func TestGetTimeoutFromContext(t *testing.T) {
	t.Run("uses the default", func(t *testing.T) {
		ctx, cancel := getTimeoutFromContext(context.Background(), time.Second, ContextKeyQueryTimeout)
		defer cancel()
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 200*time.Millisecond)
	})

	t.Run("context override wins", func(t *testing.T) {
		base := WithQueryTimeout(context.Background(), time.Minute)
		ctx, cancel := getTimeoutFromContext(base, time.Second, ContextKeyQueryTimeout)
		defer cancel()
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 200*time.Millisecond)
	})

	t.Run("zero timeout means no deadline", func(t *testing.T) {
		ctx, cancel := getTimeoutFromContext(context.Background(), 0, ContextKeyExecuteTimeout)
		defer cancel()
		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestSchema_DefinesAccessAndTables(t *testing.T) {
	s := Schema()
	for _, want := range []string{
		"DEFINE ACCESS OVERWRITE account",
		"DEFINE ACCESS OVERWRITE oauth",
		"DEFINE TABLE OVERWRITE user_preferences",
		"DEFINE TABLE OVERWRITE tickets",
		"crypto::argon2::compare",
	} {
		assert.Contains(t, s, want)
	}
}

func TestApplySchema_RequiresBridgeSecret(t *testing.T) {
	err := ApplySchema(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
