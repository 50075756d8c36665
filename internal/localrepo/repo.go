// Package localrepo is the local descriptor source: it reads one
// repository checkout from disk and assembles a best-effort descriptor
// from the directory name and git metadata.
package localrepo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gitfolio/internal/detect"
	"gitfolio/internal/portfolio"
)

// Repo is one local repository directory.
type Repo struct {
	root string
}

// Open validates that dir exists and is a directory.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open %s: not a directory", dir)
	}
	return &Repo{root: abs}, nil
}

// Root returns the absolute repository path.
func (r *Repo) Root() string {
	return r.root
}

// Info assembles a repository descriptor from the directory name plus
// whatever git metadata is available. Every git-derived field degrades
// to empty when the directory is not a checkout or git is missing.
func (r *Repo) Info() portfolio.RepoInfo {
	info := portfolio.RepoInfo{
		Name: filepath.Base(r.root),
	}

	if remote, ok := r.git("remote", "get-url", "origin"); ok {
		info.URL = normalizeRemoteURL(remote)
		if owner, name, ok := splitGitHubURL(info.URL); ok {
			info.FullName = owner + "/" + name
		}
	}
	if pushed, ok := r.git("log", "-1", "--format=%cI"); ok {
		info.PushedAt = pushed
	}
	if branch, ok := r.git("rev-parse", "--abbrev-ref", "HEAD"); ok {
		info.DefaultBranch = branch
	}

	return info
}

// ReadFile reads one file relative to the repository root. Absence
// covers every failure cause.
func (r *Repo) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(r.root, path))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListFiles returns the pruned recursive file listing, relative
// slash-separated paths.
func (r *Repo) ListFiles() []string {
	return detect.ListFiles(r.root)
}

func (r *Repo) git(args ...string) (string, bool) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.root
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	s := strings.TrimSpace(string(out))
	if s == "" {
		return "", false
	}
	return s, true
}

// normalizeRemoteURL converts ssh-style remotes to https and strips
// the .git suffix.
func normalizeRemoteURL(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")
	if after, ok := strings.CutPrefix(remote, "git@"); ok {
		return "https://" + strings.Replace(after, ":", "/", 1)
	}
	return remote
}

func splitGitHubURL(url string) (owner, name string, ok bool) {
	after, found := strings.CutPrefix(url, "https://github.com/")
	if !found {
		return "", "", false
	}
	parts := strings.Split(after, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
