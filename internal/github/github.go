package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"regexp"
	"strings"
	"time"

	gh "github.com/google/go-github/v71/github"
	"golang.org/x/time/rate"

	"github.com/Chitrak-Aseri/Agents/internal/review"
)

// Tracker is the issue tracker the issue run reads from and files into.
type Tracker interface {
	// OpenIssues returns every open issue as "title: body".
	OpenIssues(ctx context.Context) ([]string, error)
	// CreateIssue files one issue and returns its URL.
	CreateIssue(ctx context.Context, title, body string) (string, error)
}

// Options configures NewClient.
type Options struct {
	Token  string
	Owner  string
	Repo   string
	Labels []string
	// APIURL overrides https://api.github.com, e.g. for GitHub Enterprise.
	APIURL     string
	HTTPClient *http.Client
	// Interval spaces out issue creation. Zero means one per second.
	Interval time.Duration
}

// Client talks to the GitHub REST API for one repository.
type Client struct {
	api     *gh.Client
	owner   string
	repo    string
	labels  []string
	limiter *rate.Limiter
}

// ErrNoToken is returned when no GitHub token is available.
var ErrNoToken = errors.New("GITHUB_TOKEN environment variable is not set")

// NewClient creates a GitHub client for opts.Owner/opts.Repo.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrNoToken
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}

	httpCli := opts.HTTPClient
	if httpCli == nil {
		httpCli = &http.Client{Timeout: 60 * time.Second}
	}
	api := gh.NewClient(httpCli).WithAuthToken(opts.Token)
	if opts.APIURL != "" {
		u, err := url.Parse(strings.TrimRight(opts.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		api.BaseURL = u
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return &Client{
		api:     api,
		owner:   opts.Owner,
		repo:    opts.Repo,
		labels:  opts.Labels,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// OpenIssues lists every open issue, following pagination. Pull requests
// are skipped.
func (c *Client) OpenIssues(ctx context.Context) ([]string, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var out []string
	for {
		issues, resp, err := c.api.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues of %s/%s: %w", c.owner, c.repo, err)
		}
		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			out = append(out, is.GetTitle()+": "+is.GetBody())
		}
		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateIssue files an issue with the configured labels. Calls are
// throttled to the client's interval.
func (c *Client) CreateIssue(ctx context.Context, title, body string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	req := &gh.IssueRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
	}
	if len(c.labels) > 0 {
		labels := append([]string(nil), c.labels...)
		req.Labels = &labels
	}
	is, _, err := c.api.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return "", fmt.Errorf("creating issue %q: %w", title, err)
	}
	return is.GetHTMLURL(), nil
}

// DryRun wraps a Tracker so that CreateIssue files nothing.
type DryRun struct {
	Tracker
}

func (d DryRun) CreateIssue(_ context.Context, title, _ string) (string, error) {
	return "(dry run) " + title, nil
}

// FileIssues creates one issue per entry, in order. It stops at the first
// failure and returns the URLs created so far.
func FileIssues(ctx context.Context, t Tracker, issues []review.Issue) ([]string, error) {
	urls := make([]string, 0, len(issues))
	for _, is := range issues {
		u, err := t.CreateIssue(ctx, is.Title, is.Body)
		if err != nil {
			return urls, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// ResolveRepository returns owner/repo from, in order: explicit,
// GITHUB_REPOSITORY, GITHUB_REPO, then the git remote origin.
func ResolveRepository(explicit string, env map[string]string) (owner, repo string, err error) {
	for _, v := range []string{explicit, env["GITHUB_REPOSITORY"], env["GITHUB_REPO"]} {
		if v != "" {
			return SplitRepository(v)
		}
	}
	return DetectRepo()
}

// SplitRepository parses "owner/repo".
func SplitRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository must be owner/repo, got %q", s)
	}
	return owner, repo, nil
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
