// Package generator runs the per-repository inference pipeline and
// accumulates finalized portfolio entries.
package generator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gitfolio/internal/detect"
	"gitfolio/internal/merge"
	"gitfolio/internal/portfolio"
)

// Source is the descriptor-source collaborator. Both the remote GitHub
// client and a local filesystem source satisfy it; the pipeline is
// agnostic to which backs it. File access reports absence for any
// failure cause, never an error.
type Source interface {
	ListRepositories(ctx context.Context) ([]portfolio.RepoInfo, error)
	GetFileContent(ctx context.Context, repoName, path string) (string, bool)
	GetFileTree(ctx context.Context, repoName, branch string) []string
}

// readmeCandidates are tried in order; the first hit is used.
var readmeCandidates = []string{"README.md", "readme.md", "README"}

// Generator drives the pipeline over one descriptor source.
type Generator struct {
	src Source
	now func() time.Time
}

// New creates a generator over the given source.
func New(src Source) *Generator {
	return &Generator{src: src, now: time.Now}
}

// Generate processes every repository from the source, strictly one at
// a time to respect the source's rate limits, and returns the included
// entries. A per-repository failure is logged and skipped; it never
// aborts the remaining repositories.
func (g *Generator) Generate(ctx context.Context, exclude map[string]bool) ([]portfolio.PortfolioEntry, error) {
	repos, err := g.src.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	log.Printf("Processing %d repositories", len(repos))

	var entries []portfolio.PortfolioEntry
	for _, repo := range repos {
		if exclude[repo.Name] || exclude[repo.FullName] {
			continue
		}
		entry, included, err := g.processRepo(ctx, repo)
		if err != nil {
			log.Printf("Skipping %s: %v", repo.Name, err)
			continue
		}
		if included {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// processRepo runs the detectors for one repository and merges the
// results. The three detectors and the override fetch are issued as
// independent concurrent reads and joined before merging. included is
// false when the override excludes the repository.
func (g *Generator) processRepo(ctx context.Context, repo portfolio.RepoInfo) (entry portfolio.PortfolioEntry, included bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("process repository: %v", r)
		}
	}()

	tree := g.src.GetFileTree(ctx, repo.Name, repo.DefaultBranch)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		panicErr error
		det      merge.Detected
		override *portfolio.PortfolioConfig
	)

	// Each detector runs in its own goroutine, so each needs its own
	// recover. The deferred recover above only covers this goroutine.
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if panicErr == nil {
						panicErr = fmt.Errorf("process repository: %v", r)
					}
					mu.Unlock()
				}
			}()
			fn()
		}()
	}

	run(func() { det.Readme = g.detectReadme(ctx, repo.Name) })
	run(func() { det.Tech = g.detectTech(ctx, repo, tree) })
	run(func() { det.Assets = detect.FromFileList(tree) })
	run(func() { override = g.fetchOverride(ctx, repo.Name) })
	wg.Wait()

	if panicErr != nil {
		return portfolio.PortfolioEntry{}, false, panicErr
	}
	if override != nil && override.Exclude {
		return portfolio.PortfolioEntry{}, false, nil
	}
	return merge.Entry(repo, override, det, g.now()), true, nil
}

func (g *Generator) detectReadme(ctx context.Context, repoName string) detect.ReadmeResult {
	for _, candidate := range readmeCandidates {
		if text, ok := g.src.GetFileContent(ctx, repoName, candidate); ok {
			return detect.ExtractReadme(text)
		}
	}
	return detect.ReadmeResult{}
}

func (g *Generator) detectTech(ctx context.Context, repo portfolio.RepoInfo, tree []string) detect.TechResult {
	m := detect.Manifests{}
	m.PackageJSON, _ = g.src.GetFileContent(ctx, repo.Name, "package.json")
	m.CargoToml, _ = g.src.GetFileContent(ctx, repo.Name, "Cargo.toml")
	m.Requirements, _ = g.src.GetFileContent(ctx, repo.Name, "requirements.txt")
	m.PyProject, _ = g.src.GetFileContent(ctx, repo.Name, "pyproject.toml")
	for _, p := range tree {
		if p == "go.mod" {
			m.HasGoMod = true
			break
		}
	}
	return detect.DetectTech(m, repo.Topics, repo.Language)
}

// fetchOverride reads and validates the repository's override file. A
// missing file is the normal auto-detection path; a malformed one is
// logged and discarded so the repository still gets full
// auto-detection rather than failing the run.
func (g *Generator) fetchOverride(ctx context.Context, repoName string) *portfolio.PortfolioConfig {
	data, ok := g.src.GetFileContent(ctx, repoName, portfolio.ConfigFileName)
	if !ok {
		return nil
	}
	cfg, errs := portfolio.ParseConfig([]byte(data))
	if len(errs) > 0 {
		log.Printf("Ignoring invalid %s in %s: %v", portfolio.ConfigFileName, repoName, errs)
		return nil
	}
	return cfg
}
