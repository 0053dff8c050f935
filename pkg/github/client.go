// Package github fetches public GitHub profile data used to enrich candidates.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	maxRepos       = 30
	maxHighlights  = 3
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	now     func() time.Time
}

func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
}

// WithBaseURL points the client at another API host (GitHub Enterprise, tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type user struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
}

type repo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	Fork            bool   `json:"fork"`
}

// UsernameFromURL extracts the login from a profile URL such as
// https://github.com/octocat or github.com/octocat/.
func UsernameFromURL(profileURL string) (string, error) {
	raw := strings.TrimSpace(profileURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid github url: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return "", fmt.Errorf("not a github url: %s", profileURL)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", fmt.Errorf("github url has no username: %s", profileURL)
	}
	return parts[0], nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchProfile returns the user's public profile with languages of their own
// repositories as skills and years of experience inferred from account age.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (*domain.ExternalProfile, error) {
	username, err := UsernameFromURL(profileURL)
	if err != nil {
		return nil, err
	}

	var u user
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &u); err != nil {
		return nil, err
	}

	var repos []repo
	path := fmt.Sprintf("/users/%s/repos?per_page=%d&sort=updated", url.PathEscape(username), maxRepos)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}

	profile := &domain.ExternalProfile{
		Username:    u.Login,
		Name:        u.Name,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		PublicRepos: u.PublicRepos,
		Skills:      languages(repos),
		Highlights:  highlights(repos),
	}
	if !u.CreatedAt.IsZero() {
		years := int(c.now().Sub(u.CreatedAt).Hours() / (24 * 365))
		profile.YearsExperience = &years
	}
	return profile, nil
}

// languages ranks repository languages by how many non-fork repos use them.
func languages(repos []repo) []string {
	counts := map[string]int{}
	for _, r := range repos {
		if r.Fork || r.Language == "" {
			continue
		}
		counts[r.Language]++
	}
	out := make([]string, 0, len(counts))
	for lang := range counts {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func highlights(repos []repo) []string {
	own := make([]repo, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			own = append(own, r)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].StargazersCount > own[j].StargazersCount })

	var out []string
	for _, r := range own {
		if len(out) == maxHighlights {
			break
		}
		line := r.Name
		if r.Language != "" {
			line += " (" + r.Language + ")"
		}
		if r.Description != "" {
			line += ": " + r.Description
		}
		out = append(out, line)
	}
	return out
}
