package server_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/nfrund/zippytrip/internal/app"
	"github.com/nfrund/zippytrip/internal/config"
	"github.com/nfrund/zippytrip/internal/server"
	"github.com/nfrund/zippytrip/internal/testutils"
	"github.com/stretchr/testify/require"
)

// testServer is a full server over in-memory collaborators.
type testServer struct {
	*testutils.Env
	URL string
}

func setupIntegrationTest(t *testing.T) *testServer {
	t.Helper()
	env := testutils.NewEnv(t, time.Second)

	cfg := config.Defaults()
	cfg.SessionSecret = "integration-secret"
	cfg.AuthRateLimit = 1000

	srv := server.New(app.Dependencies{
		Config:      cfg,
		Catalog:     env.Catalog,
		Preferences: env.Preferences,
		Tickets:     env.Tickets,
		OAuth:       env.OAuth,
		Manager:     env.Manager,
		Mailer:      env.Outbox,
	})
	ts := httptest.NewServer(srv.E)
	t.Cleanup(ts.Close)
	return &testServer{Env: env, URL: ts.URL}
}

// browser is an HTTP client with its own cookie jar. It follows redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (s *testServer) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(s.URL)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		// Redirects leaving the test server are returned, not followed.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if req.URL.Host != base.Host {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return &browser{t: t, base: s.URL, client: client}
}

// page is a followed response: the final path and the body.
type page struct {
	Status   int
	Path     string
	Location string
	Query    url.Values
	Body     string
}

func (b *browser) result(resp *http.Response, err error) page {
	b.t.Helper()
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{
		Status:   resp.StatusCode,
		Path:     resp.Request.URL.Path,
		Location: resp.Header.Get("Location"),
		Query:    resp.Request.URL.Query(),
		Body:     string(body),
	}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	return b.result(b.client.Get(b.base + path))
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	return b.result(b.client.PostForm(b.base+path, form))
}

// cookie returns the named cookie the jar holds for the server.
func (b *browser) cookie(name string) *http.Cookie {
	u, _ := url.Parse(b.base)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c
		}
	}
	return nil
}
