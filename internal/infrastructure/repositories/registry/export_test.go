package registry

// ParseGitHubURL exports parseGitHubURL for testing.
var ParseGitHubURL = parseGitHubURL //nolint:gochecknoglobals // test export

// ExtractVersionFromTag exports extractVersionFromTag for testing.
var ExtractVersionFromTag = extractVersionFromTag //nolint:gochecknoglobals // test export

// SetBaseURLs points the resolver at test servers.
func (it *ResolverRepository) SetBaseURLs(pypiBaseURL, githubBaseURL string) {
	it.pypiBaseURL = pypiBaseURL
	it.githubBaseURL = githubBaseURL
}
