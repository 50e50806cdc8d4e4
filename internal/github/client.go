package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/devconnect-service/internal/config"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client fetches public repositories for a github username. Responses are
// cached in Redis so repeated profile views do not burn API quota.
type Client struct {
	cfg    config.GithubConfig
	http   *http.Client
	cache  *redis.Client
	logger *zap.Logger
}

// NewClient builds a client. The cache may be nil; lookups then always
// hit the API.
func NewClient(cfg config.GithubConfig, cache *redis.Client, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		cache:  cache,
		logger: logger,
	}
}

// ListRepos returns up to five repositories sorted by creation order.
// A non-200 response from the API maps to a not-found error; transport
// failures map to upstream-unavailable.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	cacheKey := "github:repos:" + username

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var repos []Repo
			if err := json.Unmarshal(cached, &repos); err == nil {
				return repos, nil
			}
		} else if err != redis.Nil {
			c.logger.Warn("github cache read failed", zap.Error(err))
		}
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.cfg.APIBaseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "token "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewNotFound("github profile")
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperrors.NewUpstreamUnavailable(err)
	}

	c.storeInCache(ctx, cacheKey, repos)
	return repos, nil
}

func (c *Client) storeInCache(ctx context.Context, key string, repos []Repo) {
	if c.cache == nil || c.cfg.CacheTTL() <= 0 {
		return
	}
	payload, err := json.Marshal(repos)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, payload, c.cfg.CacheTTL()).Err(); err != nil {
		c.logger.Warn("github cache write failed", zap.Error(err))
	}
}
