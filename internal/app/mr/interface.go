package mr

// Port is the interface that must be implemented by merge request adapters.
type Port interface {
	// GetMergeRequest returns the merge request of the current context.
	// A nil merge request (with a nil error) means that there is no merge request
	// (or no label information) available.
	GetMergeRequest() (*MergeRequest, error)
}
