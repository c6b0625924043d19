package mrgithub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
	gh "github.com/google/go-github/v70/github"
)

var _ mr.Port = &Adapter{}

type AdapterOptions struct {
	Token string
}

type Adapter struct {
	opts   AdapterOptions
	client *gh.Client
	owner  string
	repo   string
	number int
}

func NewAdapter(owner string, repo string, number int, opts AdapterOptions) *Adapter {
	client := gh.NewClient(nil)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	return &Adapter{
		client: client,
		opts:   opts,
		owner:  owner,
		repo:   repo,
		number: number,
	}
}

// Key returns a string identifying the pull request (used as a cache key)
func (r *Adapter) Key() string {
	return fmt.Sprintf("github-%s/%s-%d", r.owner, r.repo, r.number)
}

func (r *Adapter) createMergeRequestFromGhPr(pr *gh.PullRequest) *mr.MergeRequest {
	labels := []string{}
	for _, label := range pr.Labels {
		if label.Name == nil {
			continue
		}
		labels = append(labels, *label.Name)
	}
	return mr.NewMergeRequest(pr.GetNumber(), pr.GetTitle(), pr.GetHTMLURL(), labels)
}

func (r *Adapter) GetMergeRequest() (*mr.MergeRequest, error) {
	if r.number <= 0 {
		slog.Info("no pull request number defined")
		return nil, nil
	}
	logger := slog.Default().With("owner", r.owner, "repo", r.repo, "number", r.number)
	logger.Debug("fetching pull-request...")
	pr, _, err := r.client.PullRequests.Get(context.Background(), r.owner, r.repo, r.number)
	if err != nil {
		return nil, fmt.Errorf("can't get the pull request %s/%s#%d: %w", r.owner, r.repo, r.number, err)
	}
	logger.Debug("pull-request fetched", slog.Int("labels", len(pr.Labels)))
	return r.createMergeRequestFromGhPr(pr), nil
}
