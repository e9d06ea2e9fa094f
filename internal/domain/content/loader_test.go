package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadBuiltinOnly(t *testing.T) {
	m := monitoring.NewMetrics()

	r, err := Load(context.Background(), Sources{}, m, nil)
	require.NoError(t, err)
	assert.Equal(t, len(Builtin().Applications), r.Len())
	assert.Equal(t, float64(r.Len()), testutil.ToFloat64(m.CatalogApps))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ContentLoads.WithLabelValues("builtin", "ok")))
}

func TestLoadLayersSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/Skills.html", "<h1>Go and more</h1>")
	catalog := writeFile(t, dir, "catalog.toml", `
[[applications]]
id = "Skills"
kind = "text"
body = "from catalog"

[[applications]]
id = "Blog"
body = "<p>hi</p>"
`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("applications:\n  - id: Blog\n    kind: text\n    body: remote blog\n"))
	}))
	defer srv.Close()

	r, err := Load(context.Background(), Sources{
		Catalog:      catalog,
		Dir:          dir + "/pages",
		URL:          srv.URL + "/apps.yaml",
		Sanitize:     true,
		FetchTimeout: time.Second,
	}, nil, nil)
	require.NoError(t, err)

	skills, err := r.Get("Skills")
	require.NoError(t, err)
	assert.Equal(t, KindHTML, skills.Kind)
	assert.Equal(t, "Go and more", skills.Title)

	blog, err := r.Get("Blog")
	require.NoError(t, err)
	assert.Equal(t, "remote blog", blog.Body)
}

func TestLoadRemoteFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/apps.yaml"
	srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	m := monitoring.NewMetrics()

	r, err := Load(context.Background(), Sources{URL: url, FetchTimeout: time.Second}, m, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, len(Builtin().Applications), r.Len())
	assert.Equal(t, 1, logs.FilterMessage("Remote catalog unavailable, continuing without it").Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ContentLoads.WithLabelValues("remote", "error")))
}

func TestLoadLocalFailureIsFatal(t *testing.T) {
	_, err := Load(context.Background(), Sources{Catalog: t.TempDir() + "/missing.yaml"}, nil, nil)
	assert.Error(t, err)

	_, err = Load(context.Background(), Sources{Dir: t.TempDir(), Glob: "["}, nil, nil)
	assert.Error(t, err)
}
