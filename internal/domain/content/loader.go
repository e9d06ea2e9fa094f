package content

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Sources lists where application content comes from. Empty fields are
// skipped.
type Sources struct {
	Catalog      string
	Dir          string
	Glob         string
	URL          string
	Sanitize     bool
	FetchTimeout time.Duration
	FetchRetries int
}

// Load builds the registry: the builtin applications, then the catalog
// file, the content directory and the remote catalog, each overriding the
// ones before. Local sources must load; a failing remote catalog is
// logged and skipped.
func Load(ctx context.Context, src Sources, metrics *monitoring.Metrics, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := NewEnricher(src.Sanitize)
	reg := NewRegistry(logger)

	reg.Merge(Builtin())
	monitoring.NewTimer(metrics, "builtin").Stop("ok")

	if src.Catalog != "" {
		t := monitoring.NewTimer(metrics, "catalog")
		c, err := LoadCatalogFile(src.Catalog, e)
		if err != nil {
			t.Stop("error")
			return nil, fmt.Errorf("catalog %s: %w", src.Catalog, err)
		}
		t.Stop("ok")
		reg.Merge(c)
		logger.Info("Catalog loaded", zap.String("path", src.Catalog), zap.Int("applications", len(c.Applications)))
	}

	if src.Dir != "" {
		t := monitoring.NewTimer(metrics, "dir")
		c, err := ScanDir(ctx, src.Dir, src.Glob, e, logger)
		if err != nil {
			t.Stop("error")
			return nil, err
		}
		t.Stop("ok")
		reg.Merge(c)
		logger.Info("Content directory scanned", zap.String("dir", src.Dir), zap.Int("applications", len(c.Applications)))
	}

	if src.URL != "" {
		t := monitoring.NewTimer(metrics, "remote")
		f := NewFetcher(FetchConfig{Timeout: src.FetchTimeout, Retries: src.FetchRetries}, logger)
		c, err := f.Fetch(ctx, src.URL, e)
		if err != nil {
			t.Stop("error")
			logger.Warn("Remote catalog unavailable, continuing without it",
				zap.String("url", src.URL), zap.Error(err))
		} else {
			t.Stop("ok")
			reg.Merge(c)
			logger.Info("Remote catalog loaded", zap.String("url", src.URL), zap.Int("applications", len(c.Applications)))
		}
	}

	metrics.SetCatalogApps(reg.Len())
	return reg, nil
}
