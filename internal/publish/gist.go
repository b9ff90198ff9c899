package publish

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Client publishes revision snapshots as GitHub Gists.
type Client struct {
	gh *github.Client
}

// tokenFromEnv reads the GitHub token ebb uses to authenticate gist
// creation. Unlike the teacher's git push/PR flows, publishing a gist
// needs no repository context, just a token.
func tokenFromEnv() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("GITHUB_TOKEN is not set")
}

// NewClient builds a publish client authenticated against the GitHub API.
func NewClient(ctx context.Context) (*Client, error) {
	token, err := tokenFromEnv()
	if err != nil {
		return nil, fmt.Errorf("get github token: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &Client{gh: github.NewClient(tc)}, nil
}

// Result describes a gist created by PublishSnapshot.
type Result struct {
	HTMLURL string
	ID      string
}

// PublishSnapshot creates a gist named fileName containing content
// (typically internal/ebb.Serialize output for one revision), with
// description as the gist's title line.
func (c *Client) PublishSnapshot(ctx context.Context, fileName, description, content string, public bool) (*Result, error) {
	gist := &github.Gist{
		Description: github.String(description),
		Public:      github.Bool(public),
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(fileName): {Content: github.String(content)},
		},
	}

	created, _, err := c.gh.Gists.Create(ctx, gist)
	if err != nil {
		return nil, fmt.Errorf("create gist: %w", err)
	}

	return &Result{
		HTMLURL: created.GetHTMLURL(),
		ID:      created.GetID(),
	}, nil
}
