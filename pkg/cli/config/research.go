package config

import (
	"log/slog"
	"time"

	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/service/research"
	"github.com/urfave/cli/v3"
)

// Research holds CLI flags for the crash safety research gathering service
type Research struct {
	enabled         bool
	cacheDir        string
	cacheTTL        time.Duration
	refreshInterval time.Duration
}

// Flags returns CLI flags for research configuration
func (r *Research) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "enable-research",
			Usage:       "Enable fetching crash safety research context for analysis",
			Value:       true,
			Sources:     cli.EnvVars("SAFETY1ST_ENABLE_RESEARCH"),
			Destination: &r.enabled,
		},
		&cli.StringFlag{
			Name:        "research-cache-dir",
			Usage:       "Directory for the on-disk research page cache (empty disables caching)",
			Sources:     cli.EnvVars("SAFETY1ST_RESEARCH_CACHE_DIR"),
			Destination: &r.cacheDir,
		},
		&cli.DurationFlag{
			Name:        "research-cache-ttl",
			Usage:       "Lifetime of cached research pages",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("SAFETY1ST_RESEARCH_CACHE_TTL"),
			Destination: &r.cacheTTL,
		},
		&cli.DurationFlag{
			Name:        "research-refresh-interval",
			Usage:       "Background research warm-up interval (0 disables the worker)",
			Value:       6 * time.Hour,
			Sources:     cli.EnvVars("SAFETY1ST_RESEARCH_REFRESH_INTERVAL"),
			Destination: &r.refreshInterval,
		},
	}
}

// LogAttrs returns log attributes for the research configuration
func (r *Research) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("enabled", r.enabled),
		slog.String("cache_dir", r.cacheDir),
		slog.Duration("cache_ttl", r.cacheTTL),
		slog.Duration("refresh_interval", r.refreshInterval),
	}
}

// RefreshInterval returns the background warm-up interval
func (r *Research) RefreshInterval() time.Duration {
	return r.refreshInterval
}

// Configure creates the research service from the configured flags.
// Returns nil if research gathering is disabled.
func (r *Research) Configure() interfaces.ResearchService {
	if !r.enabled {
		return nil
	}

	opts := []research.Option{
		research.WithCacheTTL(r.cacheTTL),
	}
	if r.cacheDir != "" {
		opts = append(opts, research.WithCacheDir(r.cacheDir))
	}

	return research.New(opts...)
}
