package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
applications:
  - id: Blog
    kind: html
    body: "<h1>My Blog</h1><script>alert(1)</script>"
  - id: Notes
    file: notes.txt
  - id: Docs
    kind: iframe
    src: /docs.pdf
    window:
      position:
        y: 10
      size:
        width: 800
        height: 900
      fit_viewport: true
  - id: Later
dock:
  - label: Blog
    icon: "B"
    app: Blog
desktop:
  - label: Docs
    app: Docs
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func byID(c *Catalog) map[window.ApplicationID]Payload {
	out := make(map[window.ApplicationID]Payload, len(c.Applications))
	for _, p := range c.Applications {
		out[p.ID] = p
	}
	return out
}

func TestLoadCatalogFileYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "remember the milk")
	path := writeFile(t, dir, "catalog.yaml", yamlCatalog)

	c, err := LoadCatalogFile(path, NewEnricher(true))
	require.NoError(t, err)
	require.Len(t, c.Applications, 4)
	assert.Equal(t, window.ApplicationID("Blog"), c.Applications[0].ID)

	apps := byID(c)

	blog := apps["Blog"]
	assert.Equal(t, KindHTML, blog.Kind)
	assert.Equal(t, "My Blog", blog.Title)
	assert.Contains(t, blog.Body, "My Blog")
	assert.NotContains(t, blog.Body, "script")

	notes := apps["Notes"]
	assert.Equal(t, KindText, notes.Kind)
	assert.Equal(t, "remember the milk", notes.Body)
	assert.Equal(t, "Notes", notes.Title)
	assert.Equal(t, "text/plain", notes.MIMEType)
	assert.Equal(t, "utf-8", notes.Charset)

	docs := apps["Docs"]
	assert.Equal(t, KindIframe, docs.Kind)
	require.NotNil(t, docs.Window)
	require.NotNil(t, docs.Window.Position)
	assert.Nil(t, docs.Window.Position.X)
	require.NotNil(t, docs.Window.Position.Y)
	assert.Equal(t, 10, *docs.Window.Position.Y)
	assert.Equal(t, &window.Size{Width: 800, Height: 900}, docs.Window.Size)
	assert.True(t, docs.Window.FitViewport)

	later := apps["Later"]
	assert.Equal(t, KindPlaceholder, later.Kind)
	assert.Equal(t, PlaceholderBody, later.Body)

	assert.Equal(t, []Launcher{{Label: "Blog", Icon: "B", App: "Blog"}}, c.Dock)
	assert.Equal(t, []Launcher{{Label: "Docs", App: "Docs"}}, c.Desktop)
}

func TestParseCatalogTOML(t *testing.T) {
	data := `
[[applications]]
id = "Readme"
kind = "text"
body = "hello"

[[applications]]
id = "Shell"
kind = "component"
component = "terminal"

[[dock]]
label = "Readme"
app = "Readme"
`
	c, err := ParseCatalog([]byte(data), FormatTOML, "", nil)
	require.NoError(t, err)

	apps := byID(c)
	assert.Equal(t, KindText, apps["Readme"].Kind)
	assert.Equal(t, "hello", apps["Readme"].Body)
	assert.Equal(t, "text/plain", apps["Readme"].MIMEType)
	assert.Equal(t, "terminal", apps["Shell"].Component)
	assert.Len(t, c.Dock, 1)
}

func TestParseCatalogJSON(t *testing.T) {
	data := `{"applications":[{"id":"Resume","kind":"iframe","src":"/cv.pdf","window":{"size":{"width":640,"height":480}}}]}`

	c, err := ParseCatalog([]byte(data), FormatJSON, "", nil)
	require.NoError(t, err)
	require.Len(t, c.Applications, 1)
	assert.Equal(t, "/cv.pdf", c.Applications[0].Src)
	assert.Equal(t, &window.Size{Width: 640, Height: 480}, c.Applications[0].Window.Size)
}

func TestParseCatalogRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"duplicate id", "applications:\n  - id: A\n    body: x\n  - id: A\n    body: y\n"},
		{"iframe without src", "applications:\n  - id: A\n    kind: iframe\n"},
		{"component without name", "applications:\n  - id: A\n    kind: component\n"},
		{"html without body", "applications:\n  - id: A\n    kind: html\n"},
		{"unknown kind", "applications:\n  - id: A\n    kind: video\n"},
		{"missing id", "applications:\n  - body: x\n"},
		{"bad id", "applications:\n  - id: \"../etc\"\n    body: x\n"},
		{"bad launcher", "dock:\n  - label: Nothing\n"},
		{"file without base dir", "applications:\n  - id: A\n    file: a.txt\n"},
		{"not yaml", "applications: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data), FormatYAML, "", nil)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalogFileRejectsEscapingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "secret.txt", "top secret")
	path := writeFile(t, root, "catalogs/catalog.yml", "applications:\n  - id: Leak\n    file: ../secret.txt\n")

	_, err := LoadCatalogFile(path, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadCatalogFileUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.ini", "x=1")

	_, err := LoadCatalogFile(path, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestFormatDetection(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":                FormatYAML,
		"A.YML":                 FormatYAML,
		"/srv/catalog.toml":     FormatTOML,
		"https://x/c/apps.json": FormatJSON,
	} {
		got, ok := FormatFromPath(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
	_, ok := FormatFromPath("catalog")
	assert.False(t, ok)

	for ct, want := range map[string]Format{
		"application/yaml":                FormatYAML,
		"text/x-yaml; charset=utf-8":      FormatYAML,
		"application/toml":                FormatTOML,
		"application/json; charset=utf-8": FormatJSON,
	} {
		got, ok := FormatFromContentType(ct)
		assert.True(t, ok, ct)
		assert.Equal(t, want, got, ct)
	}
	_, ok = FormatFromContentType("text/html")
	assert.False(t, ok)
}

func TestBuiltin(t *testing.T) {
	c := Builtin()
	apps := byID(c)

	require.Contains(t, apps, window.ApplicationID("Resume"))
	resume := apps["Resume"]
	assert.Equal(t, KindIframe, resume.Kind)
	require.NotNil(t, resume.Window)
	assert.Equal(t, 10, *resume.Window.Position.Y)
	assert.True(t, resume.Window.FitViewport)

	assert.Equal(t, KindComponent, apps["Terminal"].Kind)
	for _, p := range c.Applications {
		assert.True(t, p.Kind.Valid(), p.ID)
	}

	// The first desktop icon has no content of its own.
	_, ok := apps[c.Desktop[0].App]
	assert.False(t, ok)
}
