package content

import (
	"errors"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
)

var (
	// ErrUnknownApplication is returned for ids with no catalog entry.
	ErrUnknownApplication = errors.New("unknown application")
	// ErrUnsupportedContent is returned for files that cannot be shown inline.
	ErrUnsupportedContent = errors.New("unsupported content")
	// ErrInvalidCatalog wraps catalog decoding and validation failures.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrFetch wraps remote catalog failures.
	ErrFetch = errors.New("catalog fetch failed")
)

// Kind tells the shell how to render a payload.
type Kind string

const (
	KindHTML        Kind = "html"
	KindText        Kind = "text"
	KindIframe      Kind = "iframe"
	KindComponent   Kind = "component"
	KindPlaceholder Kind = "placeholder"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindHTML, KindText, KindIframe, KindComponent, KindPlaceholder:
		return true
	}
	return false
}

// PlaceholderBody is shown for applications without content.
const PlaceholderBody = "App content"

// Payload is the content of one application window.
type Payload struct {
	ID        window.ApplicationID `json:"id"`
	Kind      Kind                 `json:"kind"`
	Title     string               `json:"title,omitempty"`
	Icon      string               `json:"icon,omitempty"`
	Body      string               `json:"body,omitempty"`
	Src       string               `json:"src,omitempty"`
	Component string               `json:"component,omitempty"`
	MIMEType  string               `json:"mime_type,omitempty"`
	Charset   string               `json:"charset,omitempty"`
	Window    *window.Override     `json:"window,omitempty"`
}

// Placeholder returns the payload shown for an unknown application.
func Placeholder(id window.ApplicationID) Payload {
	return Payload{
		ID:       id,
		Kind:     KindPlaceholder,
		Title:    string(id),
		Body:     PlaceholderBody,
		MIMEType: "text/plain",
	}
}

// Launcher is a dock or desktop icon that opens an application.
type Launcher struct {
	Label string               `json:"label" yaml:"label" toml:"label"`
	Icon  string               `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	App   window.ApplicationID `json:"app" yaml:"app" toml:"app"`
}

// Catalog is a resolved set of applications from one source.
type Catalog struct {
	Applications []Payload
	Dock         []Launcher
	Desktop      []Launcher
}
