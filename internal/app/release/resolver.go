package release

import (
	"log/slog"
	"slices"
	"strings"
)

// ParseLabels splits the raw comma separated labels string.
// Tokens are kept as is (" bumpMinor" keeps its leading space) unless trimSpaces is set.
func ParseLabels(raw string, trimSpaces bool) []string {
	labels := strings.Split(raw, ",")
	if trimSpaces {
		for i, label := range labels {
			labels[i] = strings.TrimSpace(label)
		}
	}
	return labels
}

// Resolve returns the release type for the given raw labels string.
//
// An empty string gives NoRelease. Otherwise the result is Patch, upgraded to
// Major if the major label is present, then to Minor if the minor label is present.
// Both checks are independent overwrites: when both labels are set, Minor wins.
func Resolve(raw string, config Config) Type {
	if raw == "" {
		return NoRelease
	}
	labels := ParseLabels(raw, config.TrimSpaces)
	releaseType := Patch
	if slices.Contains(labels, config.MajorLabel) {
		releaseType = Major
	}
	if slices.Contains(labels, config.MinorLabel) {
		releaseType = Minor
	}
	return releaseType
}

// Resolver is Resolve with diagnostics sent to a logger.
type Resolver struct {
	config Config
	logger *slog.Logger
}

func NewResolver(config Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		config: config,
		logger: logger,
	}
}

func (r *Resolver) Resolve(raw string) Type {
	if raw == "" {
		r.logger.Info("The merge request labels are not defined => no release")
		return NoRelease
	}
	releaseType := Resolve(raw, r.config)
	r.logger.Debug("labels considered", slog.String("labels", raw), slog.String("majorLabel", r.config.MajorLabel), slog.String("minorLabel", r.config.MinorLabel))
	r.logger.Info("Analysis of MR labels complete: " + releaseType.String() + " release")
	return releaseType
}
