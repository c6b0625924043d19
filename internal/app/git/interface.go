package git

// Port is the interface that must be implemented by git adapters.
type Port interface {
	// GetContainedTags returns the list of tags contained by the given branch
	// (all tags if branch is empty).
	GetContainedTags(branch string) ([]*Tag, error)
	// GuessProjectPath returns the "namespace/project" path read from the origin remote
	// (empty string if it can't be guessed).
	GuessProjectPath() string
}
