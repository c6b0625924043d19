package git

import (
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Tag represents a git tag with its name, creation time and semantic version.
type Tag struct {
	Name   string          // tag name (without modification)
	Time   time.Time       // commit time of the tag
	Semver *semver.Version // semver version read from tag name (nil if the tag name is not in the expected format)
	Prefix string          // prefix read before the semver version ("v", "foo/v"...)
}

// NewTag creates a new Tag instance with the given name and date.
// The name is parsed to extract the semantic version: a "v" prefix and a "foo/" path prefix
// are removed (and kept in Prefix) before parsing.
// If the name is not in the expected format, the Semver field of the returned Tag will be nil.
func NewTag(name string, date time.Time) *Tag {
	if name == "" {
		return nil
	}
	prefix := ""
	nameWithoutPrefix := name
	if idx := strings.LastIndex(nameWithoutPrefix, "/"); idx >= 0 {
		prefix = nameWithoutPrefix[:idx+1]
		nameWithoutPrefix = nameWithoutPrefix[idx+1:]
	}
	if strings.HasPrefix(nameWithoutPrefix, "v") {
		prefix += "v"
		nameWithoutPrefix = nameWithoutPrefix[1:]
	}
	version, err := semver.NewVersion(nameWithoutPrefix)
	if err != nil {
		version = nil
	}
	return &Tag{
		Name:   name,
		Time:   date,
		Semver: version,
		Prefix: prefix,
	}
}

// LessThan orders tags by semantic version, then by time.
// Non semantic tags come first.
func (t *Tag) LessThan(other *Tag) bool {
	switch {
	case t.Semver == nil:
		return true
	case other.Semver == nil:
		return false
	}
	if c := t.Semver.Compare(other.Semver); c != 0 {
		return c < 0
	}
	return t.Time.Before(other.Time)
}

// NewName returns the tag name for newVersion, with the prefix of t ("v", "foo/v"...).
func (t *Tag) NewName(newVersion semver.Version) string {
	return t.Prefix + newVersion.String()
}
