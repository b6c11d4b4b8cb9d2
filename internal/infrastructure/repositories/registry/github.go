package registry

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// githubURLPattern extracts the owner/repo pair from the GitHub URL forms
// found in manifests: https, git+https and ssh, with optional ".git" and
// "@ref" suffixes.
var githubURLPattern = regexp.MustCompile(
	`github\.com[:/]([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?(?:@[^/]*)?$`,
)

// tagVersionPattern strips an optional leading "v"/"V", "release-" or
// "version-" prefix from a tag name; the remainder must start with a digit.
var tagVersionPattern = regexp.MustCompile(`^(?:release-|version-|[vV])?([0-9].*)$`)

// githubRelease mirrors the fields of the GitHub releases payload the
// resolver needs.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

// githubTag mirrors one entry of the GitHub tags payload.
type githubTag struct {
	Name string `json:"name"`
}

// parseGitHubURL extracts the owner/repo pair from a GitHub URL. The third
// return value is false for non-GitHub or unparseable URLs.
func parseGitHubURL(rawURL string) (string, string, bool) {
	match := githubURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// extractVersionFromTag converts a tag name to a version string, or returns
// an empty string for tags that do not look like versions ("latest").
func extractVersionFromTag(tag string) string {
	match := tagVersionPattern.FindStringSubmatch(tag)
	if match == nil {
		return ""
	}
	return match[1]
}

// resolveGitHub looks up the latest version of a repository through its
// releases, falling back to its tags, consulting the cache first.
func (it *ResolverRepository) resolveGitHub(
	ctx context.Context,
	owner, repo string,
) entities.Resolution {
	key := "github:" + owner + "/" + repo
	if resolution, ok := it.cached(key); ok {
		return resolution
	}

	resolution := it.fetchGitHub(ctx, owner, repo)
	it.store(key, resolution)
	return resolution
}

func (it *ResolverRepository) fetchGitHub(
	ctx context.Context,
	owner, repo string,
) entities.Resolution {
	var lastErr string

	var releases []githubRelease
	releasesURL := fmt.Sprintf("%s/repos/%s/%s/releases", it.githubBaseURL, owner, repo)
	if err := it.getJSON(ctx, releasesURL, true, &releases); err != nil {
		lastErr = fmt.Sprintf("GitHub releases lookup for %s/%s failed: %v", owner, repo, err)
	} else if version := findVersionFromReleases(releases); version != "" {
		return entities.ResolvedVersion(version)
	}

	var tags []githubTag
	tagsURL := fmt.Sprintf("%s/repos/%s/%s/tags", it.githubBaseURL, owner, repo)
	if err := it.getJSON(ctx, tagsURL, true, &tags); err != nil {
		lastErr = fmt.Sprintf("GitHub tags lookup for %s/%s failed: %v", owner, repo, err)
	} else if version := it.findVersionFromTags(tags); version != "" {
		return entities.ResolvedVersion(version)
	}

	return entities.UnknownResolution(lastErr)
}

// findVersionFromReleases picks a version from the releases list: drafts are
// skipped, the first non-prerelease with a version-like tag wins, and when
// every release is a prerelease the first one by list order is used. The
// upstream list order is trusted as-is.
func findVersionFromReleases(releases []githubRelease) string {
	fallback := ""
	for _, release := range releases {
		if release.Draft {
			continue
		}
		version := extractVersionFromTag(release.TagName)
		if version == "" {
			continue
		}
		if !release.Prerelease {
			return version
		}
		if fallback == "" {
			fallback = version
		}
	}
	return fallback
}

// findVersionFromTags picks the version-like tag with the greatest numeric
// tuple; the first-seen tag wins on equal tuples.
func (it *ResolverRepository) findVersionFromTags(tags []githubTag) string {
	best := ""
	for _, tag := range tags {
		version := extractVersionFromTag(tag.Name)
		if version == "" {
			continue
		}
		if best == "" || it.comparator.IsGreater(version, best) {
			best = version
		}
	}
	return best
}
