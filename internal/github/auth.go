// Package github lists repository directories through the GitHub contents API
// using the go-github library, authenticated with a single bearer token.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const (
	defaultAPIURL    = "https://api.github.com"
	DefaultUserAgent = "Repox-App"
)

// NewTokenClient creates a *github.Client that sends token as a bearer
// credential. Pass baseURL="" for api.github.com, or another URL for GitHub
// Enterprise or a fake server.
func NewTokenClient(token, baseURL, userAgent string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	c := gogithub.NewClient(httpClient)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c.UserAgent = userAgent
	applyBaseURL(c, baseURL)
	return c
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
