package github

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/v68/github"
	lru "github.com/hashicorp/golang-lru/v2"
)

func TestToRepoInfo(t *testing.T) {
	pushed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	r := &github.Repository{
		Name:          github.Ptr("robot-arm"),
		FullName:      github.Ptr("me/robot-arm"),
		Description:   github.Ptr("A robot arm"),
		HTMLURL:       github.Ptr("https://github.com/me/robot-arm"),
		Homepage:      github.Ptr("https://example.com"),
		Topics:        []string{"robotics", "python"},
		Language:      github.Ptr("Python"),
		Archived:      github.Ptr(true),
		DefaultBranch: github.Ptr("main"),
		PushedAt:      &github.Timestamp{Time: pushed},
	}

	got := toRepoInfo(r)

	if got.Name != "robot-arm" || got.FullName != "me/robot-arm" {
		t.Errorf("name mapping: %+v", got)
	}
	if got.URL != "https://github.com/me/robot-arm" {
		t.Errorf("url = %q", got.URL)
	}
	if !reflect.DeepEqual(got.Topics, []string{"robotics", "python"}) {
		t.Errorf("topics = %v", got.Topics)
	}
	if !got.Archived {
		t.Error("archived flag lost")
	}
	if got.PushedAt != "2024-03-10T12:00:00Z" {
		t.Errorf("pushedAt = %q", got.PushedAt)
	}
	if got.DefaultBranch != "main" {
		t.Errorf("defaultBranch = %q", got.DefaultBranch)
	}
}

// stubTransport answers /user with a canned login and everything else
// with 404, so no request leaves the process.
type stubTransport struct{}

func (stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	status := http.StatusNotFound
	body := `{"message": "Not Found"}`
	if req.URL.Path == "/user" {
		status = http.StatusOK
		body = `{"login": "someone"}`
	}
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}
	return resp, nil
}

func stubClient() *Client {
	cache, _ := lru.New[string, string](fileCacheSize)
	return &Client{
		client:    github.NewClient(&http.Client{Transport: stubTransport{}}),
		fileCache: cache,
	}
}

func TestGetFileContent_ConcurrentLoginResolution(t *testing.T) {
	c := stubClient()
	ctx := context.Background()

	// Mirrors the detector fan-out: several file fetches in flight at
	// once while the login is still unresolved.
	var wg sync.WaitGroup
	for _, path := range []string{"README.md", "package.json", ".portfolio.json"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if _, ok := c.GetFileContent(ctx, "repo", p); ok {
				t.Errorf("stub returns 404 for %s, expected absence", p)
			}
		}(path)
	}
	wg.Wait()

	if got := c.owner(ctx); got != "someone" {
		t.Errorf("owner = %q, want resolved login", got)
	}
}

func TestOwner_ResolvesOnce(t *testing.T) {
	c := stubClient()
	ctx := context.Background()

	if got := c.owner(ctx); got != "someone" {
		t.Fatalf("owner = %q", got)
	}
	// Second call must serve the cached login.
	c.client = nil
	if got := c.owner(ctx); got != "someone" {
		t.Errorf("owner = %q after caching", got)
	}
}

func TestToRepoInfo_ZeroValues(t *testing.T) {
	got := toRepoInfo(&github.Repository{Name: github.Ptr("bare")})

	if got.PushedAt != "" {
		t.Errorf("missing push timestamp must stay empty, got %q", got.PushedAt)
	}
	if got.Archived {
		t.Error("archived must default to false")
	}
}
