package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	assert.NotEqual(t, gen.Generate(), gen.Generate())
	assert.Len(t, gen.Generate().String(), 26)
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{DesktopPrefix, TracePrefix, SpanPrefix} {
		got := gen.GenerateWithPrefix(prefix)

		parts := strings.Split(got, "_")
		require.Len(t, parts, 2, got)
		assert.Equal(t, prefix, parts[0])
		assert.Len(t, parts[1], 26)
	}
}

func TestTypedIDs(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewDesktopID().String(), "desk_"))
	assert.True(t, strings.HasPrefix(NewTraceID().String(), "trace_"))
	assert.True(t, strings.HasPrefix(NewSpanID().String(), "span_"))

	_, err := uuid.Parse(NewConnectionID().String())
	assert.NoError(t, err)
}

func TestParseDesktopID(t *testing.T) {
	valid := NewDesktopID()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"generated", valid.String(), false},
		{"empty", "", true},
		{"missing prefix", strings.TrimPrefix(valid.String(), "desk_"), true},
		{"wrong prefix", "trace_" + strings.TrimPrefix(valid.String(), "desk_"), true},
		{"bad ulid", "desk_not-a-ulid", true},
		{"path traversal", "desk_../../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDesktopID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, got)
		})
	}
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 64)
	a := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()

	assert.Equal(t, a.Entropy(), b.Entropy())
}

func TestConcurrentGeneration(t *testing.T) {
	const workers, perWorker = 8, 200
	var (
		mu   sync.Mutex
		seen = make(map[DesktopID]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := NewDesktopID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
