package mrenv

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/fabien-marty/gitlab-mr-release-type/internal/app/mr"
)

var _ mr.Port = &Adapter{}

// GitLab CI predefined variables
const (
	LabelsEnvVar     = "CI_MERGE_REQUEST_LABELS"
	IIDEnvVar        = "CI_MERGE_REQUEST_IID"
	TitleEnvVar      = "CI_MERGE_REQUEST_TITLE"
	ProjectURLEnvVar = "CI_MERGE_REQUEST_PROJECT_URL"
)

type AdapterOptions struct {
	// Lookup is used to read variables (default to os.LookupEnv)
	Lookup func(key string) (string, bool)
	// Labels, if not empty, is used instead of the CI_MERGE_REQUEST_LABELS variable
	Labels string
}

type Adapter struct {
	opts AdapterOptions
}

func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	return &Adapter{
		opts: opts,
	}
}

func (r *Adapter) get(key string) string {
	value, _ := r.opts.Lookup(key)
	return value
}

func (r *Adapter) GetMergeRequest() (*mr.MergeRequest, error) {
	labels := r.opts.Labels
	if labels == "" {
		labels = r.get(LabelsEnvVar)
	}
	if labels == "" {
		slog.Debug("The env variable " + LabelsEnvVar + " is not defined")
		return nil, nil
	}
	iid := 0
	if s := r.get(IIDEnvVar); s != "" {
		var err error
		iid, err = strconv.Atoi(s)
		if err != nil {
			slog.Warn("bad merge request iid => ignoring", slog.String("iid", s))
			iid = 0
		}
	}
	webURL := ""
	if projectURL := r.get(ProjectURLEnvVar); projectURL != "" && iid > 0 {
		webURL = projectURL + "/-/merge_requests/" + strconv.Itoa(iid)
	}
	return &mr.MergeRequest{
		IID:       iid,
		Title:     r.get(TitleEnvVar),
		WebURL:    webURL,
		RawLabels: labels,
	}, nil
}
