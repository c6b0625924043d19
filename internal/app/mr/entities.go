package mr

import "strings"

// MergeRequest represents a merge (or pull) request.
type MergeRequest struct {
	IID       int    // merge request internal id (0 if unknown)
	Title     string // merge request title
	WebURL    string // merge request url
	RawLabels string // comma separated labels (CI_MERGE_REQUEST_LABELS format)
}

// NewMergeRequest creates a MergeRequest, labels are joined with commas.
func NewMergeRequest(iid int, title string, webURL string, labels []string) *MergeRequest {
	return &MergeRequest{
		IID:       iid,
		Title:     title,
		WebURL:    webURL,
		RawLabels: strings.Join(labels, ","),
	}
}
