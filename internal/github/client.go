package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitviz-backend/internal/config"
)

const (
	acceptHeader = "application/vnd.github.v3+json"
	userAgent    = "gitviz-backend"

	// listings are fetched as a single page
	perPage = "100"
)

// Client handles GitHub API interactions with a static credential.
// It is safe for concurrent use and holds no per-request state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	location   *time.Location
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLocation sets the time zone used when rendering rate limit reset times
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		c.location = loc
	}
}

// NewClient creates a new GitHub API client
func NewClient(cfg config.GitHubConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// repositoryInfo is the subset of the repository payload needed to resolve the tree ref
type repositoryInfo struct {
	DefaultBranch string `json:"default_branch"`
}

// FetchRepositoryTree fetches the recursive tree of a repository.
// An empty branch means the repository's default branch, which costs one extra call.
func (c *Client) FetchRepositoryTree(ctx context.Context, owner, repo, branch string) (json.RawMessage, error) {
	if branch == "" {
		resolved, err := c.defaultBranch(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		branch = resolved
	}

	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s", escapeSegment(owner), escapeSegment(repo), escapeRef(branch))
	return c.get(ctx, path, url.Values{"recursive": {"1"}})
}

// FetchUser fetches a user profile
func (c *Client) FetchUser(ctx context.Context, username string) (json.RawMessage, error) {
	return c.get(ctx, "/users/"+escapeSegment(username), nil)
}

// FetchUserRepositories fetches up to 100 of a user's repositories, most recently updated first
func (c *Client) FetchUserRepositories(ctx context.Context, username string) (json.RawMessage, error) {
	query := url.Values{
		"per_page": {perPage},
		"sort":     {"updated"},
	}
	return c.get(ctx, "/users/"+escapeSegment(username)+"/repos", query)
}

// FetchRepositoryLanguages fetches the language to byte count mapping of a repository
func (c *Client) FetchRepositoryLanguages(ctx context.Context, owner, repo string) (json.RawMessage, error) {
	path := fmt.Sprintf("/repos/%s/%s/languages", escapeSegment(owner), escapeSegment(repo))
	return c.get(ctx, path, nil)
}

// FetchUserStarredRepos fetches up to 100 repositories starred by a user
func (c *Client) FetchUserStarredRepos(ctx context.Context, username string) (json.RawMessage, error) {
	query := url.Values{"per_page": {perPage}}
	return c.get(ctx, "/users/"+escapeSegment(username)+"/starred", query)
}

func (c *Client) defaultBranch(ctx context.Context, owner, repo string) (string, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", escapeSegment(owner), escapeSegment(repo)), nil)
	if err != nil {
		return "", err
	}

	var info repositoryInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return "", &APIError{
			Kind:    KindUpstream,
			Status:  http.StatusBadGateway,
			Message: "failed to decode repository metadata",
			Err:     err,
		}
	}
	if info.DefaultBranch == "" {
		return "", &APIError{
			Kind:    KindUpstream,
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("repository %s/%s has no default branch", owner, repo),
		}
	}
	return info.DefaultBranch, nil
}

// get performs an authenticated GET and returns the body verbatim
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, mapResponseError(resp, body, c.location)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	if !json.Valid(body) {
		return nil, &APIError{
			Kind:    KindUpstream,
			Status:  http.StatusBadGateway,
			Message: "upstream returned an invalid JSON payload",
		}
	}

	return json.RawMessage(body), nil
}

// escapeRef escapes each segment of a ref name, keeping its slashes
func escapeRef(ref string) string {
	segments := strings.Split(ref, "/")
	for i, s := range segments {
		segments[i] = escapeSegment(s)
	}
	return strings.Join(segments, "/")
}

// escapeSegment escapes a single path segment. Dot segments are percent-encoded
// so they cannot climb out of the resource path.
func escapeSegment(s string) string {
	switch s {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(s)
}
