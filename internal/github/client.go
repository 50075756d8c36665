// Package github implements the remote descriptor source on top of the
// GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/go-github/v68/github"
	lru "github.com/hashicorp/golang-lru/v2"

	"gitfolio/internal/portfolio"
)

// fileCacheSize bounds the number of fetched file contents kept in
// memory across repositories.
const fileCacheSize = 256

// Client provides the repository listing and file access the pipeline
// needs, scoped to one account.
type Client struct {
	client    *github.Client
	user      string
	token     string
	fileCache *lru.Cache[string, string]

	// login is the authenticated user's account name, resolved lazily
	// when user is empty. Guarded by loginMu: file fetches run
	// concurrently within a repository's detector fan-out.
	loginMu sync.Mutex
	login   string
}

// NewClient creates a GitHub API client for the given account. An
// empty token falls back to the GITHUB_TOKEN environment variable; an
// empty user means the authenticated user.
func NewClient(user, token string) *Client {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}

	cache, _ := lru.New[string, string](fileCacheSize)

	return &Client{
		client:    github.NewClient(httpClient),
		user:      user,
		token:     token,
		fileCache: cache,
	}
}

type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req.Header.Set("Authorization", "token "+t.token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// ListRepositories fetches every repository for the configured account,
// most recently pushed first. Pagination is handled internally; callers
// see one flat sequence.
func (c *Client) ListRepositories(ctx context.Context) ([]portfolio.RepoInfo, error) {
	if c.user == "" {
		return c.listAuthenticated(ctx)
	}

	var all []portfolio.RepoInfo
	opts := &github.RepositoryListByUserOptions{
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, c.user, opts)
		if err != nil {
			return nil, fmt.Errorf("list repositories for %s: %w", c.user, err)
		}
		for _, r := range repos {
			all = append(all, toRepoInfo(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) listAuthenticated(ctx context.Context) ([]portfolio.RepoInfo, error) {
	var all []portfolio.RepoInfo
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("list repositories: %w", err)
		}
		for _, r := range repos {
			all = append(all, toRepoInfo(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func toRepoInfo(r *github.Repository) portfolio.RepoInfo {
	info := portfolio.RepoInfo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		URL:           r.GetHTMLURL(),
		Homepage:      r.GetHomepage(),
		Topics:        r.Topics,
		Language:      r.GetLanguage(),
		Archived:      r.GetArchived(),
		DefaultBranch: r.GetDefaultBranch(),
	}
	if pushed := r.GetPushedAt(); !pushed.IsZero() {
		info.PushedAt = pushed.Format(time.RFC3339)
	}
	return info
}

// GetFileContent fetches one file from a repository. Absence covers
// every failure cause alike: not found, decode failure, transient
// network error. Fetched content goes through an LRU cache so repeated
// manifest reads within a run cost one API call.
func (c *Client) GetFileContent(ctx context.Context, repoName, path string) (string, bool) {
	key := c.owner(ctx) + "/" + repoName + "/" + path
	if cached, ok := c.fileCache.Get(key); ok {
		return cached, true
	}

	content, _, _, err := c.client.Repositories.GetContents(ctx, c.owner(ctx), repoName, path, nil)
	if err != nil || content == nil {
		return "", false
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", false
	}

	c.fileCache.Add(key, decoded)
	return decoded, true
}

// GetFileTree fetches the recursive file listing for a branch, blobs
// only. Any failure yields an empty listing.
func (c *Client) GetFileTree(ctx context.Context, repoName, branch string) []string {
	if branch == "" {
		branch = "main"
	}
	tree, _, err := c.client.Git.GetTree(ctx, c.owner(ctx), repoName, branch, true)
	if err != nil || tree == nil {
		return nil
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			paths = append(paths, entry.GetPath())
		}
	}
	return paths
}

func (c *Client) owner(ctx context.Context) string {
	if c.user != "" {
		return c.user
	}
	c.loginMu.Lock()
	defer c.loginMu.Unlock()
	if c.login == "" {
		if u, _, err := c.client.Users.Get(ctx, ""); err == nil {
			c.login = u.GetLogin()
		}
	}
	return c.login
}
