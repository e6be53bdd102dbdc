package metrics

// Tag keys attached to every series of a run
const (
	TagProjectName    = "project_name"
	TagProjectVersion = "project_version"
	TagCommitHash     = "commit_hash"
	TagBranchName     = "branch_name"
)

// Tag renders a key:value tag
func Tag(key, value string) string {
	return key + ":" + value
}

// RunTags holds the optional metadata describing a run
type RunTags struct {
	ProjectName    string
	ProjectVersion string
	CommitHash     string
	BranchName     string
}

// Tags renders the supplied values as key:value tags, skipping empty ones.
// The result is never nil so an empty run still gets an empty tag set.
func (r RunTags) Tags() []string {
	tags := make([]string, 0, 4)
	for _, kv := range [...]struct{ key, value string }{
		{TagProjectName, r.ProjectName},
		{TagProjectVersion, r.ProjectVersion},
		{TagCommitHash, r.CommitHash},
		{TagBranchName, r.BranchName},
	} {
		if kv.value == "" {
			continue
		}
		tags = append(tags, Tag(kv.key, kv.value))
	}
	return tags
}
