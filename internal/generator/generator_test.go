package generator

import (
	"context"
	"testing"
	"time"

	"gitfolio/internal/portfolio"
)

// fakeSource serves canned repositories and file contents.
type fakeSource struct {
	repos []portfolio.RepoInfo
	files map[string]map[string]string // repo -> path -> content
	trees     map[string][]string
	panic     string // repo name whose tree fetch panics
	filePanic string // repo name whose file fetches panic
}

func (f *fakeSource) ListRepositories(ctx context.Context) ([]portfolio.RepoInfo, error) {
	return f.repos, nil
}

func (f *fakeSource) GetFileContent(ctx context.Context, repoName, path string) (string, bool) {
	if repoName == f.filePanic {
		panic("file fetch exploded")
	}
	content, ok := f.files[repoName][path]
	return content, ok
}

func (f *fakeSource) GetFileTree(ctx context.Context, repoName, branch string) []string {
	if repoName == f.panic {
		panic("tree fetch exploded")
	}
	return f.trees[repoName]
}

func newTestGenerator(src Source) *Generator {
	g := New(src)
	g.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate_FullPipeline(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{{
			Name:          "robot-arm",
			FullName:      "me/robot-arm",
			URL:           "https://github.com/me/robot-arm",
			Topics:        []string{"robotics"},
			Language:      "Python",
			PushedAt:      "2024-03-10T12:00:00Z",
			DefaultBranch: "main",
		}},
		files: map[string]map[string]string{
			"robot-arm": {
				"README.md": "# Robot Arm\n\nA 6-axis robot arm. Built from scratch.\n",
			},
		},
		trees: map[string][]string{
			"robot-arm": {"README.md", "cad/arm.stl", "docs/photo.png", "src/main.py"},
		},
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}

	e := entries[0]
	if e.ShortDescription != "A 6-axis robot arm." {
		t.Errorf("shortDescription = %q", e.ShortDescription)
	}
	if e.Category != "Robotics" {
		t.Errorf("category = %q", e.Category)
	}
	if len(e.Models) != 1 || e.Models[0] != "cad/arm.stl" {
		t.Errorf("models = %v", e.Models)
	}
	if len(e.Images) != 1 || e.Images[0] != "docs/photo.png" {
		t.Errorf("images = %v", e.Images)
	}
	if e.DateCompleted != "2024-03" {
		t.Errorf("dateCompleted = %q", e.DateCompleted)
	}
}

func TestGenerate_ExcludeSet(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{
			{Name: "keep", URL: "https://github.com/me/keep"},
			{Name: "drop", FullName: "me/drop", URL: "https://github.com/me/drop"},
		},
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), map[string]bool{"me/drop": true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "keep" {
		t.Errorf("entries = %v", entries)
	}
}

func TestGenerate_OverrideExcludes(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{{Name: "hidden", URL: "https://github.com/me/hidden"}},
		files: map[string]map[string]string{
			"hidden": {
				portfolio.ConfigFileName: `{"name": "hidden", "exclude": true}`,
			},
		},
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("excluded repo must not produce an entry, got %v", entries)
	}
}

func TestGenerate_MalformedOverrideFallsBack(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{{
			Name:     "messy",
			URL:      "https://github.com/me/messy",
			Language: "Go",
			PushedAt: "2024-05-01T00:00:00Z",
		}},
		files: map[string]map[string]string{
			"messy": {
				portfolio.ConfigFileName: `{"name": "messy", "dateCompleted": "2024/03"}`,
			},
		},
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("invalid override must not drop the repo, got %d entries", len(entries))
	}
	if entries[0].DateCompleted != "2024-05" {
		t.Errorf("dateCompleted = %q, want auto-detected 2024-05", entries[0].DateCompleted)
	}
	if entries[0].Category != "Backend/API" {
		t.Errorf("category = %q, want auto-detected", entries[0].Category)
	}
}

func TestGenerate_PerRepoFailureSkips(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{
			{Name: "boom", URL: "https://github.com/me/boom"},
			{Name: "fine", URL: "https://github.com/me/fine"},
		},
		panic: "boom",
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("a per-repository failure must not abort the run: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "fine" {
		t.Errorf("entries = %v, want only the healthy repo", entries)
	}
}

func TestGenerate_DetectorPanicSkipsRepo(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{
			{Name: "boom", URL: "https://github.com/me/boom"},
			{Name: "fine", URL: "https://github.com/me/fine"},
		},
		filePanic: "boom",
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("a panic inside a detector must not abort the run: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "fine" {
		t.Errorf("entries = %v, want only the healthy repo", entries)
	}
}

func TestGenerate_ReadmeCandidateOrder(t *testing.T) {
	src := &fakeSource{
		repos: []portfolio.RepoInfo{{Name: "r", URL: "https://github.com/me/r"}},
		files: map[string]map[string]string{
			"r": {
				"README.md": "# R\n\nFrom the markdown readme.\n",
				"README":    "plain readme, should not win",
			},
		},
	}

	entries, err := newTestGenerator(src).Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if entries[0].Description != "From the markdown readme." {
		t.Errorf("description = %q", entries[0].Description)
	}
}
