package content

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Enricher turns raw file bytes into a payload body: it detects the media
// type and charset, decodes to UTF-8, pulls a title and icon out of HTML
// and optionally sanitizes it.
type Enricher struct {
	policy *bluemonday.Policy
}

// NewEnricher creates an enricher. With sanitize set, HTML bodies are
// filtered through the bluemonday user-generated-content policy.
func NewEnricher(sanitize bool) *Enricher {
	e := &Enricher{}
	if sanitize {
		e.policy = bluemonday.UGCPolicy()
	}
	return e
}

// Enrich fills p from raw, the contents of the file called name. Fields
// already set on p (Kind, Title, Icon) are kept.
func (e *Enricher) Enrich(p *Payload, raw []byte, name string) error {
	if err := utils.ValidateBodySize(int64(len(raw))); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedContent, name, err)
	}

	mt := mimetype.Detect(raw)
	kind := kindFor(name, mt)
	if kind == "" {
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedContent, name, mt.String())
	}

	text, cs, err := decodeText(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedContent, name, err)
	}

	if p.Kind == "" {
		p.Kind = kind
	}
	p.MIMEType = mediaType(name, mt)
	p.Charset = cs

	if p.Kind == KindHTML {
		if p.Title == "" {
			p.Title = htmlTitle(text)
		}
		if p.Icon == "" {
			p.Icon = htmlIcon(text)
		}
		text = e.Sanitize(text)
	}
	p.Body = text
	return nil
}

// Sanitize filters HTML through the policy, if any.
func (e *Enricher) Sanitize(html string) string {
	if e == nil || e.policy == nil {
		return html
	}
	return e.policy.Sanitize(html)
}

func kindFor(name string, mt *mimetype.MIME) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return KindHTML
	case ".txt", ".md", ".markdown":
		return KindText
	}
	if mt.Is("text/html") {
		return KindHTML
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return KindText
		}
	}
	return ""
}

func mediaType(name string, mt *mimetype.MIME) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return "text/markdown"
	}
	media, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(media)
}

// decodeText returns raw as UTF-8 along with the charset it was in.
func decodeText(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil {
		return "", "", fmt.Errorf("cannot detect charset")
	}
	label := strings.ToLower(result.Charset)

	r, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", label, err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", label, err)
	}
	return string(decoded), label, nil
}

// htmlTitle returns the document title, or the first heading.
func htmlTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, sel := range []string{"title", "h1"} {
		if t := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); t != "" {
			return t
		}
	}
	return ""
}

// iconPaths are tried in order. A meta icon holds an emoji or short glyph;
// a link icon holds a URL.
var iconPaths = []string{
	`//meta[@name="icon"]/@content`,
	`//link[contains(concat(" ", normalize-space(@rel), " "), " icon ")]/@href`,
}

// htmlIcon returns the icon a document declares in its head, if any.
func htmlIcon(html string) string {
	doc, err := htmlquery.Parse(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, expr := range iconPaths {
		node, err := htmlquery.Query(doc, expr)
		if err != nil || node == nil {
			continue
		}
		if v := strings.TrimSpace(htmlquery.InnerText(node)); v != "" {
			return v
		}
	}
	return ""
}
