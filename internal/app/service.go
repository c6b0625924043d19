package app

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/git"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/release"
)

// ErrNoRelease is the error returned when the labels don't allow to determine a release
var ErrNoRelease = errors.New("no need to create a release")

const defaultFirstVersion = "v0.0.0"

// DefaultOutputTemplate prints the release type (or nothing when there is no release)
const DefaultOutputTemplate = "{{ if .Release }}{{ .ReleaseType }}{{ end }}"

// Result is the object given to output templates
type Result struct {
	ReleaseType  string           // major, minor, patch (empty if no release)
	Release      bool             // false if no release has to be done
	MergeRequest *mr.MergeRequest // merge request used for the analysis (can be nil)
	OldVersion   string           // latest tag name (only set when computing the next version)
	NewVersion   string           // next tag name (only set when computing the next version)
}

// NewResult creates a Result for the given release type
func NewResult(releaseType release.Type, mergeRequest *mr.MergeRequest) Result {
	return Result{
		ReleaseType:  string(releaseType),
		Release:      releaseType.IsRelease(),
		MergeRequest: mergeRequest,
	}
}

// Service is the main application service
type Service struct {
	config     Config
	mrAdapter  mr.Port
	gitAdapter git.Port
	resolver   *release.Resolver
	logger     *slog.Logger
}

// NewService creates a new Service (gitAdapter can be nil if GetNextVersion is not used)
func NewService(config Config, mrAdapter mr.Port, gitAdapter git.Port) *Service {
	logger := slog.Default()
	return &Service{
		config:     config,
		mrAdapter:  mrAdapter,
		gitAdapter: gitAdapter,
		resolver:   release.NewResolver(config.ReleaseConfig(), logger.With("name", "resolver")),
		logger:     logger,
	}
}

// GetReleaseType returns the release type computed from the labels of the current merge request
// (release.NoRelease if there is no label information at all)
func (s *Service) GetReleaseType() (release.Type, *mr.MergeRequest, error) {
	mergeRequest, err := s.mrAdapter.GetMergeRequest()
	if err != nil {
		return release.NoRelease, nil, fmt.Errorf("can't get the merge request: %w", err)
	}
	if mergeRequest == nil {
		s.logger.Debug("no merge request found")
		return s.resolver.Resolve(""), nil, nil
	}
	logger := s.logger.With(slog.Int("iid", mergeRequest.IID), slog.String("title", mergeRequest.Title))
	logger.Debug("merge request found", slog.String("labels", mergeRequest.RawLabels))
	return s.resolver.Resolve(mergeRequest.RawLabels), mergeRequest, nil
}

// GetNextVersion returns the next semantic version computed from the latest tag of the branch
// and the release type of the current merge request.
// If there is no release to do, ErrNoRelease is returned (with a partially filled result).
func (s *Service) GetNextVersion(branch string) (Result, error) {
	if s.gitAdapter == nil {
		return Result{}, errors.New("no git adapter configured")
	}
	releaseType, mergeRequest, err := s.GetReleaseType()
	if err != nil {
		return Result{}, err
	}
	result := NewResult(releaseType, mergeRequest)
	latestTag, err := git.New(s.gitAdapter).GetLatestTag(branch, s.config.TagRegex)
	if err != nil {
		return result, err
	}
	if latestTag == nil {
		first := s.config.DefaultFirstVersion
		if first == "" {
			first = defaultFirstVersion
		}
		s.logger.Warn("no tag found => let's use the default first version", slog.String("version", first))
		latestTag = git.NewTag(first, time.Unix(0, 0))
		if latestTag == nil || latestTag.Semver == nil {
			return result, fmt.Errorf("bad default first version: %s", first)
		}
	}
	s.logger.Debug(fmt.Sprintf("latest semantic (non-prerelease) tag found: %s (date: %s)", latestTag.Name, latestTag.Time.Format(time.RFC3339)))
	result.OldVersion = latestTag.Name
	if !releaseType.IsRelease() {
		result.NewVersion = latestTag.Name
		return result, ErrNoRelease
	}
	result.NewVersion = latestTag.NewName(releaseType.Bump(*latestTag.Semver))
	return result, nil
}

// Render executes the given golang template (with sprig functions) on the result
func (s *Service) Render(result Result, templateString string) (string, error) {
	if templateString == "" {
		templateString = DefaultOutputTemplate
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(templateString)
	if err != nil {
		return "", fmt.Errorf("can't parse the template: %w", err)
	}
	var body bytes.Buffer
	err = tmpl.Execute(&body, result)
	if err != nil {
		return "", fmt.Errorf("can't execute the template: %w on result: %+v", err, result)
	}
	return body.String(), nil
}
