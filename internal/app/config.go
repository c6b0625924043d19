package app

import "github.com/fabien-marty/gitlab-mr-release-type/internal/app/release"

// Config is the configuration of the application
type Config struct {
	MajorLabel          string // label for considering a MR as major (default: bumpMajor)
	MinorLabel          string // label for considering a MR as minor (default: bumpMinor)
	TrimSpaces          bool   // if true, spaces around labels are removed before matching
	TagRegex            string // regex to filter tags when computing the next version (empty => no filtering)
	DefaultFirstVersion string // version used when no tag is found (default: v0.0.0)
}

// ReleaseConfig returns the configuration object for the release package
func (c *Config) ReleaseConfig() release.Config {
	res := release.NewConfig(c.MajorLabel, c.MinorLabel)
	res.TrimSpaces = c.TrimSpaces
	return res
}
