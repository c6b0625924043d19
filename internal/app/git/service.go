package git

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
)

type Service struct {
	adapter Port
	logger  *slog.Logger
}

func New(adapter Port) *Service {
	return &Service{
		adapter: adapter,
		logger:  slog.With("name", "gitService"),
	}
}

// releaseTags returns the tags of the branch which can be bumped:
// matching tagRegex (if not empty), with a semantic version and not a prerelease.
func (s *Service) releaseTags(branch string, tagRegex string) ([]*Tag, error) {
	regex, err := regexp.Compile(tagRegex)
	if err != nil {
		return nil, fmt.Errorf("can't compile the regex %s: %w", tagRegex, err)
	}
	tags, err := s.adapter.GetContainedTags(branch)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(tags, func(tag *Tag) bool {
		switch {
		case tag == nil:
			return true
		case !regex.MatchString(tag.Name):
			s.logger.Debug("tag doesn't match the regex => ignoring", slog.String("name", tag.Name), slog.String("regex", tagRegex))
		case tag.Semver == nil:
			s.logger.Debug("tag doesn't have a semantic version => ignoring", slog.String("name", tag.Name))
		case tag.Semver.Prerelease() != "":
			s.logger.Debug("tag is a prelease => ignoring", slog.String("name", tag.Name))
		default:
			return false
		}
		return true
	}), nil
}

// GetLatestTag returns the highest semantic (non-prerelease) tag contained by the branch
// (nil if there is no such tag). For a given version, the most recent tag wins.
func (s *Service) GetLatestTag(branch string, tagRegex string) (*Tag, error) {
	tags, err := s.releaseTags(branch, tagRegex)
	if err != nil {
		return nil, fmt.Errorf("can't get the list of tags contained by %s: %w", branch, err)
	}
	s.logger.Debug(fmt.Sprintf("%d tags found", len(tags)))
	if len(tags) == 0 {
		return nil, nil
	}
	return slices.MaxFunc(tags, func(a, b *Tag) int {
		if a.LessThan(b) {
			return -1
		}
		if b.LessThan(a) {
			return 1
		}
		return 0
	}), nil
}
