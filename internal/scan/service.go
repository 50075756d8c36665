// Package scan implements the local-mode operations over a
// repository's .portfolio.json override file.
package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitfolio/internal/detect"
	"gitfolio/internal/localrepo"
	"gitfolio/internal/merge"
	"gitfolio/internal/portfolio"
)

// Service runs init/update/check against one local repository.
type Service struct {
	now func() time.Time
}

// NewService creates a scan service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Detect runs the full local pipeline over the repository and returns
// a draft override document reflecting what auto-detection found.
func (s *Service) Detect(repo *localrepo.Repo) portfolio.PortfolioConfig {
	files := repo.ListFiles()
	langs := detect.LanguagesFromFiles(files)
	language := ""
	if len(langs) > 0 {
		language = langs[0]
	}

	var readme detect.ReadmeResult
	for _, candidate := range []string{"README.md", "readme.md", "README"} {
		if text, ok := repo.ReadFile(candidate); ok {
			readme = detect.ExtractReadme(text)
			break
		}
	}

	m := detect.Manifests{}
	m.PackageJSON, _ = repo.ReadFile("package.json")
	m.CargoToml, _ = repo.ReadFile("Cargo.toml")
	m.Requirements, _ = repo.ReadFile("requirements.txt")
	m.PyProject, _ = repo.ReadFile("pyproject.toml")
	_, m.HasGoMod = repo.ReadFile("go.mod")

	det := merge.Detected{
		Readme: readme,
		Tech:   detect.DetectTech(m, nil, language),
		Assets: detect.WalkDir(repo.Root()),
	}
	entry := merge.Entry(repo.Info(), nil, det, s.now())

	return portfolio.PortfolioConfig{
		Name:             entry.Name,
		ShortDescription: entry.ShortDescription,
		Description:      entry.Description,
		Category:         entry.Category,
		Technologies:     entry.Technologies,
		Status:           entry.Status,
		DateCompleted:    entry.DateCompleted,
		Models:           entry.Models,
		Images:           entry.Images,
		Thumbnail:        entry.Thumbnail,
	}
}

// Init writes a fresh draft override file. It refuses to clobber an
// existing one; that is what Update is for.
func (s *Service) Init(repo *localrepo.Repo) error {
	path := configPath(repo)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use -update to refresh it)", portfolio.ConfigFileName)
	}
	return writeConfig(path, s.Detect(repo))
}

// Update refreshes an existing override file: fields already set are
// preserved, unset fields are filled from detection, and models/images
// always refresh to reflect current repository contents. A missing
// file is an error, unlike during merge where absence just means
// auto-detection.
func (s *Service) Update(repo *localrepo.Repo) error {
	path := configPath(repo)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", portfolio.ConfigFileName, err)
	}

	var existing portfolio.PortfolioConfig
	if err := json.Unmarshal(data, &existing); err != nil {
		return fmt.Errorf("parse %s: %w", portfolio.ConfigFileName, err)
	}

	updated := merge.UpdateConfig(existing, s.Detect(repo))
	return writeConfig(path, updated)
}

// Check validates the repository's override file and returns every
// violation found.
func (s *Service) Check(repo *localrepo.Repo) error {
	data, err := os.ReadFile(configPath(repo))
	if err != nil {
		return fmt.Errorf("read %s: %w", portfolio.ConfigFileName, err)
	}
	if _, errs := portfolio.ParseConfig(data); len(errs) > 0 {
		return errs
	}
	return nil
}

func configPath(repo *localrepo.Repo) string {
	return filepath.Join(repo.Root(), portfolio.ConfigFileName)
}

// writeConfig pretty-prints the document with a trailing newline.
func writeConfig(path string, cfg portfolio.PortfolioConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
