// Package id provides centralized ID generation.
//
// Desktop, trace and span ids are prefixed ULIDs ("desk_01J..."): sortable by
// creation time and readable in logs. Pointer stream connections use random
// UUIDs since they are never looked up.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// DesktopID identifies one desktop (one browser tab).
type DesktopID string

// TraceID identifies a request trace.
type TraceID string

// SpanID identifies one span within a trace.
type SpanID string

// ConnectionID identifies a pointer stream connection.
type ConnectionID string

// ID prefixes.
const (
	DesktopPrefix = "desk"
	TracePrefix   = "trace"
	SpanPrefix    = "span"
)

// ErrInvalid is returned when an id does not have the expected form.
var ErrInvalid = errors.New("invalid id")

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator using crypto/rand entropy.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewDesktopID generates a new desktop ID.
func NewDesktopID() DesktopID {
	return DesktopID(Default().GenerateWithPrefix(DesktopPrefix))
}

// NewTraceID generates a new trace ID.
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID generates a new span ID.
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

// NewConnectionID generates a random connection ID.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

func (id DesktopID) String() string    { return string(id) }
func (id TraceID) String() string      { return string(id) }
func (id SpanID) String() string       { return string(id) }
func (id ConnectionID) String() string { return string(id) }

// ParseDesktopID checks that s is a desktop ID.
func ParseDesktopID(s string) (DesktopID, error) {
	if err := checkPrefixed(s, DesktopPrefix); err != nil {
		return "", err
	}
	return DesktopID(s), nil
}

func checkPrefixed(s, prefix string) error {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return fmt.Errorf("%w: %q lacks %s_ prefix", ErrInvalid, s, prefix)
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return nil
}
