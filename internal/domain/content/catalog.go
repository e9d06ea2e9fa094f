package content

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/paths"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format is a catalog encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file name or URL path extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// FormatFromContentType picks the format from an HTTP Content-Type.
func FormatFromContentType(contentType string) (Format, bool) {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch media {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/toml", "text/toml":
		return FormatTOML, true
	case "application/json":
		return FormatJSON, true
	}
	return "", false
}

// catalogFile is the on-disk catalog layout.
type catalogFile struct {
	Applications []entry    `json:"applications" yaml:"applications" toml:"applications"`
	Dock         []Launcher `json:"dock" yaml:"dock" toml:"dock"`
	Desktop      []Launcher `json:"desktop" yaml:"desktop" toml:"desktop"`
}

type entry struct {
	ID        string           `json:"id" yaml:"id" toml:"id"`
	Kind      Kind             `json:"kind" yaml:"kind" toml:"kind"`
	Title     string           `json:"title" yaml:"title" toml:"title"`
	Icon      string           `json:"icon" yaml:"icon" toml:"icon"`
	Body      string           `json:"body" yaml:"body" toml:"body"`
	File      string           `json:"file" yaml:"file" toml:"file"`
	Src       string           `json:"src" yaml:"src" toml:"src"`
	Component string           `json:"component" yaml:"component" toml:"component"`
	Window    *window.Override `json:"window" yaml:"window" toml:"window"`
}

// LoadCatalogFile reads a YAML, TOML or JSON catalog. Entries may name a
// file relative to the catalog's directory.
func LoadCatalogFile(path string, e *Enricher) (*Catalog, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown catalog format", ErrInvalidCatalog, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, format, filepath.Dir(path), e)
}

// ParseCatalog decodes and resolves a catalog. With an empty baseDir,
// entries that reference files are rejected.
func ParseCatalog(data []byte, format Format, baseDir string, e *Enricher) (*Catalog, error) {
	var file catalogFile
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = sonic.Unmarshal(data, &file)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		Applications: make([]Payload, 0, len(file.Applications)),
		Dock:         file.Dock,
		Desktop:      file.Desktop,
	}
	seen := make(map[string]bool, len(file.Applications))
	for i, ent := range file.Applications {
		p, err := ent.resolve(baseDir, e)
		if err != nil {
			return nil, fmt.Errorf("%w: application %d (%q): %v", ErrInvalidCatalog, i, ent.ID, err)
		}
		if seen[ent.ID] {
			return nil, fmt.Errorf("%w: duplicate application %q", ErrInvalidCatalog, ent.ID)
		}
		seen[ent.ID] = true
		c.Applications = append(c.Applications, p)
	}
	for _, l := range append(append([]Launcher{}, c.Dock...), c.Desktop...) {
		if err := utils.ValidateApplicationID(string(l.App)); err != nil {
			return nil, fmt.Errorf("%w: launcher %q: %v", ErrInvalidCatalog, l.Label, err)
		}
	}
	return c, nil
}

func (ent entry) resolve(baseDir string, e *Enricher) (Payload, error) {
	if err := utils.ValidateApplicationID(ent.ID); err != nil {
		return Payload{}, err
	}
	if err := utils.ValidateTitle(ent.Title); err != nil {
		return Payload{}, err
	}
	if ent.Kind != "" && !ent.Kind.Valid() {
		return Payload{}, fmt.Errorf("unknown kind %q", ent.Kind)
	}

	p := Payload{
		ID:        window.ApplicationID(ent.ID),
		Kind:      ent.Kind,
		Title:     ent.Title,
		Icon:      ent.Icon,
		Src:       ent.Src,
		Component: ent.Component,
		Window:    ent.Window,
	}

	switch {
	case ent.File != "":
		if baseDir == "" {
			return Payload{}, fmt.Errorf("file %q not allowed here", ent.File)
		}
		full, err := paths.Resolve(baseDir, ent.File)
		if err != nil {
			return Payload{}, err
		}
		raw, err := os.ReadFile(full)
		if err != nil {
			return Payload{}, err
		}
		if err := e.Enrich(&p, raw, full); err != nil {
			return Payload{}, err
		}
	case ent.Body != "":
		if err := utils.ValidateBodySize(int64(len(ent.Body))); err != nil {
			return Payload{}, err
		}
		if p.Kind == "" {
			p.Kind = KindHTML
		}
		p.Body = ent.Body
		if p.Kind == KindHTML {
			p.Body = e.Sanitize(ent.Body)
			p.MIMEType = "text/html"
			if p.Title == "" {
				p.Title = htmlTitle(ent.Body)
			}
		} else {
			p.MIMEType = "text/plain"
		}
	}

	switch p.Kind {
	case KindIframe:
		if p.Src == "" {
			return Payload{}, fmt.Errorf("iframe needs src")
		}
	case KindComponent:
		if p.Component == "" {
			return Payload{}, fmt.Errorf("component needs a component name")
		}
	case KindHTML, KindText:
		if p.Body == "" {
			return Payload{}, fmt.Errorf("%s needs body or file", p.Kind)
		}
	case "", KindPlaceholder:
		p.Kind = KindPlaceholder
		if p.Body == "" {
			p.Body = PlaceholderBody
		}
	}
	if p.Title == "" {
		p.Title = ent.ID
	}
	return p, nil
}
