package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, 3*time.Second, cfg.GetConfirmationDelay())
	assert.Equal(t, 5*time.Second, cfg.GetDBQueryTimeout())
	assert.Equal(t, "text", cfg.GetLogFormat())
	assert.Equal(t, 10, cfg.GetAuthRateLimit())
	assert.Equal(t, "log", cfg.GetEmailProvider())
}

func TestLoad_InvalidInteger(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT", "many")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_RATE_LIMIT")
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zippy.toml")
	content := `
surreal_url = "ws://file:8000/rpc"
surreal_ns = "zippy"
surreal_db = "travel"
server_addr = ":9000"
confirmation_delay = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SERVER_ADDR", ":9100")
	t.Setenv("WORKSPACE_IDLE_TTL", "2m")
	t.Setenv("OAUTH_BRIDGE_SECRET", "bridge")
	t.Setenv("EMAIL_PROVIDER", "resend")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://file:8000/rpc", cfg.GetDBURL())
	assert.Equal(t, "zippy", cfg.GetDBNs())
	assert.Equal(t, ":9100", cfg.GetServerAddr(), "environment overrides the file")
	assert.Equal(t, 5*time.Second, cfg.GetConfirmationDelay())
	assert.Equal(t, 2*time.Minute, cfg.GetWorkspaceIdleTTL())
	assert.Equal(t, "bridge", cfg.GetOAuthBridgeSecret())
	assert.Equal(t, "resend", cfg.GetEmailProvider())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CONFIRMATION_DELAY", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIRMATION_DELAY")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
