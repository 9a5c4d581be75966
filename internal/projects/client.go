// Package projects loads the project gallery from the GitHub REST API.
//
// The gallery is fetched at most once per process, the first time a visitor
// scrolls it into view. A failed fetch is never retried; the gallery shows
// a fixed set of sample projects instead.
package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/model"
)

// Lister lists an account's repositories, most recently pushed first.
type Lister interface {
	ListRepositories(ctx context.Context) ([]model.RepositorySummary, error)
}

// githubRepo is the subset of the GitHub repository object we render.
// See https://docs.github.com/en/rest/repos/repos#list-repositories-for-a-user
type githubRepo struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        *string  `json:"homepage"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Language        *string  `json:"language"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
}

// Client is a minimal GitHub REST client for one account.
type Client struct {
	http    *http.Client
	baseURL string
	account string
}

// NewClient creates a Client for account. If token is non-empty every
// request carries it as a bearer token, which lifts the anonymous rate
// limit. httpClient may be nil.
func NewClient(httpClient *http.Client, baseURL, account, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	if token != "" {
		// oauth2.NewClient takes the base transport from the context.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		authed := oauth2.NewClient(ctx, ts)
		authed.Timeout = httpClient.Timeout
		httpClient = authed
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		account: account,
	}
}

// ListRepositories fetches the account's public repositories sorted by last
// push, newest first. Any failure wraps apperror.ErrUpstream.
func (c *Client) ListRepositories(ctx context.Context) ([]model.RepositorySummary, error) {
	q := url.Values{}
	q.Set("sort", "pushed")
	q.Set("direction", "desc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(c.account), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("projects: building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("projects: %w", apperror.Upstream("github", 0, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("projects: %w", apperror.Upstream("github", resp.StatusCode, nil))
	}

	var raw []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("projects: decoding response: %w", apperror.Upstream("github", 0, err))
	}

	repos := make([]model.RepositorySummary, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, r.summary())
	}
	return repos, nil
}

func (r githubRepo) summary() model.RepositorySummary {
	s := model.RepositorySummary{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		CodeURL:         r.HTMLURL,
		StarCount:       r.StargazersCount,
		ForkCount:       r.ForksCount,
		PrimaryLanguage: r.Language,
		Topics:          r.Topics,
		IsFork:          r.Fork,
	}
	// GitHub sends "" for a cleared homepage.
	if r.Homepage != nil && *r.Homepage != "" {
		s.DemoURL = r.Homepage
	}
	if s.Topics == nil {
		s.Topics = []string{}
	}
	return s
}
