package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://github.com/octocat":          "octocat",
		"https://www.github.com/octocat/":     "octocat",
		"github.com/octocat/hello-world":      "octocat",
		"http://GitHub.com/octocat?tab=repos": "octocat",
	}
	for in, want := range cases {
		got, err := UsernameFromURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := UsernameFromURL("https://gitlab.com/octocat")
	assert.Error(t, err)
	_, err = UsernameFromURL("https://github.com/")
	assert.Error(t, err)
}

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/octocat":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"login": "octocat", "name": "The Octocat", "bio": "Builds things",
				"avatar_url": "https://avatars.example/octocat", "public_repos": 3,
				"created_at": "2020-01-01T00:00:00Z",
			})
		case "/users/octocat/repos":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"name": "api", "language": "Go", "stargazers_count": 10, "description": "HTTP API"},
				{"name": "cli", "language": "Go", "stargazers_count": 2},
				{"name": "site", "language": "TypeScript", "stargazers_count": 5},
				{"name": "forked", "language": "Rust", "fork": true, "stargazers_count": 100},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("gh-token").WithBaseURL(srv.URL)
	c.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	p, err := c.FetchProfile(context.Background(), "https://github.com/octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", p.Username)
	assert.Equal(t, "https://avatars.example/octocat", p.AvatarURL)
	assert.Equal(t, []string{"Go", "TypeScript"}, p.Skills)
	require.NotNil(t, p.YearsExperience)
	assert.Equal(t, 6, *p.YearsExperience)
	assert.Equal(t, "api (Go): HTTP API", p.Highlights[0])
	assert.Contains(t, p.Text(), "GitHub languages: Go, TypeScript")

	_, err = c.FetchProfile(context.Background(), "https://github.com/ghost")
	assert.Error(t, err)
}
