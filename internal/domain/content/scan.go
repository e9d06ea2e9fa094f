package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/shared/paths"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// DefaultGlob selects the files a content directory scan picks up.
const DefaultGlob = "**/*.{html,txt,md}"

// ScanDir turns every file under dir matching glob into an application
// named after the file ("About Me.html" is "About Me"). When two files
// share a name the one with the lexically smaller path wins. Files that
// cannot be read or shown inline are skipped with a warning.
func ScanDir(ctx context.Context, dir, glob string, e *Enricher, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if glob == "" {
		glob = DefaultGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid content glob %q", glob)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	var (
		mu      sync.Mutex
		matches []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(glob, paths.Slash(rel)); ok {
			mu.Lock()
			matches = append(matches, rel)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(matches)

	c := &Catalog{}
	seen := make(map[window.ApplicationID]bool, len(matches))
	for _, rel := range matches {
		id := window.ApplicationID(paths.Stem(rel))
		if seen[id] {
			logger.Warn("Duplicate content file skipped", zap.String("file", rel), logging.App(id))
			continue
		}
		if err := utils.ValidateApplicationID(string(id)); err != nil {
			logger.Warn("Content file skipped", zap.String("file", rel), zap.Error(err))
			continue
		}

		full, err := paths.Resolve(root, rel)
		if err != nil {
			logger.Warn("Content file skipped", zap.String("file", rel), zap.Error(err))
			continue
		}
		raw, err := os.ReadFile(full)
		if err != nil {
			logger.Warn("Content file unreadable", zap.String("file", rel), zap.Error(err))
			continue
		}

		p := Payload{ID: id}
		if err := e.Enrich(&p, raw, full); err != nil {
			logger.Warn("Content file skipped", zap.String("file", rel), zap.Error(err))
			continue
		}
		if p.Title == "" {
			p.Title = string(id)
		}
		seen[id] = true
		c.Applications = append(c.Applications, p)
	}
	return c, nil
}
