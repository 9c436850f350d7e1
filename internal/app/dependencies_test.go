package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nfrund/zippytrip/internal/auth/oauth"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/config"
	"github.com/nfrund/zippytrip/internal/email"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjector_OAuthWithoutGoogle(t *testing.T) {
	i := NewInjector(config.Defaults())

	registry, err := do.Invoke[*oauth.Registry](i)
	require.NoError(t, err)
	assert.Empty(t, registry.Names())
}

func TestInjector_EmbeddedCatalog(t *testing.T) {
	i := NewInjector(config.Defaults())

	cat, err := do.Invoke[*catalog.Catalog](i)
	require.NoError(t, err)
	assert.Len(t, cat.Flights(), 13)
}

func TestInjector_CatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"flights.json":      `[{"id":"1","from":"A","to":"B","price":10}]`,
		"buses.json":        `[]`,
		"destinations.json": `[]`,
		"deals.json":        `[]`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	cfg := config.Defaults()
	cfg.CatalogDir = dir
	cat, err := do.Invoke[*catalog.Catalog](NewInjector(cfg))
	require.NoError(t, err)
	require.Len(t, cat.Flights(), 1)
	assert.Equal(t, "A", cat.Flights()[0].From)
}

func TestInjector_MissingCatalogDirectory(t *testing.T) {
	cfg := config.Defaults()
	cfg.CatalogDir = filepath.Join(t.TempDir(), "absent")

	_, err := do.Invoke[*catalog.Catalog](NewInjector(cfg))
	assert.Error(t, err)
}

func TestInjector_Mailer(t *testing.T) {
	sender, err := do.Invoke[email.Sender](NewInjector(config.Defaults()))
	require.NoError(t, err)
	assert.IsType(t, &email.LogSender{}, sender)

	cfg := config.Defaults()
	cfg.EmailProvider = "resend"
	_, err = do.Invoke[email.Sender](NewInjector(cfg))
	assert.ErrorContains(t, err, "EMAIL_API_KEY")
}
