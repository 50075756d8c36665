// Package merge resolves override-vs-detector precedence into one
// finalized portfolio entry per repository.
package merge

import (
	"strings"
	"time"

	"gitfolio/internal/detect"
	"gitfolio/internal/portfolio"
)

// Detected bundles the three detector outputs for one repository.
type Detected struct {
	Readme detect.ReadmeResult
	Tech   detect.TechResult
	Assets detect.Assets
}

// archiveAge is how long a repository may go without a push before the
// status heuristic considers it archived.
const archiveAge = 365 * 24 * time.Hour

// Entry combines a repository descriptor, an optional validated
// override, and the detector outputs into one finalized entry.
//
// Every field follows the same precedence: an explicit override value
// wins, then the detector output, then nothing. Technologies and
// category are still auto-filled when an override exists but leaves
// them unset, and status/dateCompleted fall back to push-recency
// heuristics against now. A repository homepage seeds links.liveDemo
// unless the override supplies its own links block. GitHub is always
// derived from the descriptor; the override cannot change it.
func Entry(repo portfolio.RepoInfo, override *portfolio.PortfolioConfig, det Detected, now time.Time) portfolio.PortfolioEntry {
	entry := portfolio.PortfolioEntry{
		Name:    repo.Name,
		GitHub:  repo.URL,
		Enabled: true,
	}

	entry.Description = firstNonEmpty(det.Readme.Description, repo.Description)
	entry.ShortDescription = firstNonEmpty(det.Readme.ShortDescription, repo.Description)
	entry.Technologies = det.Tech.Technologies
	entry.Category = det.Tech.Category
	entry.Models = emptyToNil(det.Assets.Models)
	entry.Images = emptyToNil(det.Assets.Images)
	entry.Thumbnail = det.Assets.Thumbnail
	entry.Status = statusFor(repo, now)
	entry.DateCompleted = dateCompletedFor(repo)
	if repo.Homepage != "" {
		entry.Links = &portfolio.Links{LiveDemo: repo.Homepage}
	}

	if override == nil {
		return entry
	}

	if strings.TrimSpace(override.Name) != "" {
		entry.Name = override.Name
	}
	if override.ShortDescription != "" {
		entry.ShortDescription = override.ShortDescription
	}
	if override.Description != "" {
		entry.Description = override.Description
	}
	if override.Category != "" {
		entry.Category = override.Category
	}
	if len(override.Technologies) > 0 {
		entry.Technologies = override.Technologies
	}
	if override.Status != "" {
		entry.Status = override.Status
	}
	if override.DateCompleted != "" {
		entry.DateCompleted = override.DateCompleted
	}
	if len(override.Models) > 0 {
		entry.Models = override.Models
	}
	if len(override.Images) > 0 {
		entry.Images = override.Images
	}
	if override.Thumbnail != "" {
		entry.Thumbnail = override.Thumbnail
	}
	if override.Media != nil {
		entry.Media = override.Media
	}
	if override.Links != nil {
		entry.Links = override.Links
	}
	if override.Featured {
		entry.Featured = true
	}

	return entry
}

// statusFor applies the commit-recency heuristic: the archived flag, or
// a last push older than one year before now, yields Archived.
func statusFor(repo portfolio.RepoInfo, now time.Time) string {
	if repo.Archived {
		return portfolio.StatusArchived
	}
	if pushed, ok := parsePushedAt(repo.PushedAt); ok && now.Sub(pushed) > archiveAge {
		return portfolio.StatusArchived
	}
	return portfolio.StatusCompleted
}

// dateCompletedFor defaults the completion date to the YYYY-MM of the
// last push.
func dateCompletedFor(repo portfolio.RepoInfo) string {
	pushed, ok := parsePushedAt(repo.PushedAt)
	if !ok {
		return ""
	}
	return pushed.Format("2006-01")
}

func parsePushedAt(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	pushed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	return pushed, true
}

// UpdateConfig refreshes an existing override document against a fresh
// draft. Fields the existing document already set are preserved; fields
// it left unset take the fresh value. Models and images always refresh
// to reflect current repository contents. An empty technologies list
// counts as unset and is refreshed.
func UpdateConfig(existing, fresh portfolio.PortfolioConfig) portfolio.PortfolioConfig {
	out := existing

	if strings.TrimSpace(out.Name) == "" {
		out.Name = fresh.Name
	}
	if out.ShortDescription == "" {
		out.ShortDescription = fresh.ShortDescription
	}
	if out.Description == "" {
		out.Description = fresh.Description
	}
	if out.Category == "" {
		out.Category = fresh.Category
	}
	if len(out.Technologies) == 0 {
		out.Technologies = fresh.Technologies
	}
	if out.Status == "" {
		out.Status = fresh.Status
	}
	if out.DateCompleted == "" {
		out.DateCompleted = fresh.DateCompleted
	}
	if out.Thumbnail == "" {
		out.Thumbnail = fresh.Thumbnail
	}
	if out.Media == nil {
		out.Media = fresh.Media
	}
	if out.Links == nil {
		out.Links = fresh.Links
	}

	out.Models = fresh.Models
	out.Images = fresh.Images

	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func emptyToNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
