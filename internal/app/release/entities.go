package release

import "github.com/Masterminds/semver/v3"

// Type is the kind of semantic version bump to apply for the next release.
type Type string

const (
	Major Type = "major"
	Minor Type = "minor"
	Patch Type = "patch"
	// NoRelease is returned when the release type can't be determined
	// (no label input at all): the release pipeline should stop here.
	NoRelease Type = ""
)

const (
	DefaultMajorLabel = "bumpMajor"
	DefaultMinorLabel = "bumpMinor"
)

// IsRelease returns false only for the NoRelease sentinel.
func (t Type) IsRelease() bool {
	return t != NoRelease
}

func (t Type) String() string {
	if t == NoRelease {
		return "no"
	}
	return string(t)
}

// Bump returns the given version incremented according to the release type.
// NoRelease returns the version unchanged.
func (t Type) Bump(version semver.Version) semver.Version {
	switch t {
	case Major:
		return version.IncMajor()
	case Minor:
		return version.IncMinor()
	case Patch:
		return version.IncPatch()
	default:
		return version
	}
}

// Config holds the label names triggering a major or a minor bump.
type Config struct {
	MajorLabel string // label forcing a major release
	MinorLabel string // label forcing a minor release
	TrimSpaces bool   // if true, spaces around each label are removed before matching
}

// NewConfig returns a Config with the given label overrides
// (an empty override means "use the default label").
func NewConfig(majorLabel string, minorLabel string) Config {
	if majorLabel == "" {
		majorLabel = DefaultMajorLabel
	}
	if minorLabel == "" {
		minorLabel = DefaultMinorLabel
	}
	return Config{
		MajorLabel: majorLabel,
		MinorLabel: minorLabel,
	}
}
