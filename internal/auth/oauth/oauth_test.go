package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name string }

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) AuthCodeURL(state, challenge string) string {
	return "https://idp.test/auth?state=" + state + "&code_challenge=" + challenge
}
func (s stubProvider) ExchangeCode(ctx context.Context, code, verifier string) (*domain.ExternalIdentity, error) {
	return &domain.ExternalIdentity{Provider: s.name, Subject: code, Email: "x@example.com"}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(stubProvider{name: "google"})

	p, err := r.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	_, err = r.Get("github")
	assert.ErrorIs(t, err, domain.ErrUnknownOAuthProvider)

	r.Register(stubProvider{name: "apple"})
	assert.Equal(t, []string{"apple", "google"}, r.Names())
	assert.True(t, r.Has("apple"))
}

func TestNewPKCE(t *testing.T) {
	verifier, challenge := NewPKCE()
	require.NotEmpty(t, verifier)

	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), challenge)
}

func TestNewState(t *testing.T) {
	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
