package mrgitlab

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

var _ mr.Port = &Adapter{}

// ErrTokenRequired is returned when no GitLab token is configured
var ErrTokenRequired = errors.New("a GitLab token is required to read merge requests from the API")

type AdapterOptions struct {
	Token   string
	BaseURL string // GitLab instance url (default to https://gitlab.com)
}

type Adapter struct {
	opts    AdapterOptions
	client  *gitlab.Client
	project string // project id or "namespace/project" path
	iid     int
}

func NewAdapter(project string, iid int, opts AdapterOptions) (*Adapter, error) {
	if opts.Token == "" {
		return nil, ErrTokenRequired
	}
	clientOptions := []gitlab.ClientOptionFunc{}
	if opts.BaseURL != "" {
		clientOptions = append(clientOptions, gitlab.WithBaseURL(opts.BaseURL))
	}
	client, err := gitlab.NewClient(opts.Token, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return &Adapter{
		opts:    opts,
		client:  client,
		project: project,
		iid:     iid,
	}, nil
}

// Key returns a string identifying the merge request (used as a cache key)
func (r *Adapter) Key() string {
	return fmt.Sprintf("gitlab-%s-%s-%d", r.opts.BaseURL, r.project, r.iid)
}

func (r *Adapter) GetMergeRequest() (*mr.MergeRequest, error) {
	if r.project == "" || r.iid <= 0 {
		slog.Info("no GitLab project or merge request iid defined")
		return nil, nil
	}
	logger := slog.Default().With("project", r.project, "iid", r.iid)
	logger.Debug("fetching merge request...")
	glmr, _, err := r.client.MergeRequests.GetMergeRequest(r.project, r.iid, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get merge request %s!%d: %w", r.project, r.iid, err)
	}
	logger.Debug("merge request fetched", slog.Int("labels", len(glmr.Labels)))
	return mr.NewMergeRequest(int(glmr.IID), glmr.Title, glmr.WebURL, glmr.Labels), nil
}
