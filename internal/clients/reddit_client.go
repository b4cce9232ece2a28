package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/personaforge/internal/models"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"

	// Reddit caps listing pages at 100 items.
	redditPageLimit = 100
)

// ErrUserNotFound means the identity is missing, suspended or inaccessible.
var ErrUserNotFound = errors.New("user not found or suspended")

var (
	redditClientInstance *RedditClient
	redditClientOnce     sync.Once
)

type RedditClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     *sync.Mutex
}

func GetRedditClient() *RedditClient {
	redditClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		redditClientInstance = &RedditClient{
			Config: oauthConf,
			Client: oauthConf.Client(context.Background()),
			mu:     &sync.Mutex{},
		}
	})

	return redditClientInstance
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// CheckUserExists hits the user's about endpoint before any history fetch.
func (rc *RedditClient) CheckUserExists(ctx context.Context, username string) error {
	body, err := rc.get(ctx, fmt.Sprintf("%s/user/%s/about", REDDIT_API_URL, url.PathEscape(username)), nil, 0)
	if err != nil {
		return err
	}

	var about struct {
		Data struct {
			IsSuspended bool `json:"is_suspended"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &about); err != nil {
		return fmt.Errorf("[RedditClient] failed to parse about response: %w", err)
	}
	if about.Data.IsSuspended {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return nil
}

// FetchUserPosts pages through the user's submitted posts, newest first,
// up to maxItems.
func (rc *RedditClient) FetchUserPosts(ctx context.Context, username string, maxItems int) ([]models.RedditListingItem, error) {
	return rc.fetchListing(ctx, fmt.Sprintf("%s/user/%s/submitted", REDDIT_API_URL, url.PathEscape(username)), maxItems)
}

// FetchUserComments pages through the user's comments, newest first.
func (rc *RedditClient) FetchUserComments(ctx context.Context, username string, maxItems int) ([]models.RedditListingItem, error) {
	return rc.fetchListing(ctx, fmt.Sprintf("%s/user/%s/comments", REDDIT_API_URL, url.PathEscape(username)), maxItems)
}

func (rc *RedditClient) fetchListing(ctx context.Context, endpoint string, maxItems int) ([]models.RedditListingItem, error) {
	var items []models.RedditListingItem
	after := ""

	for len(items) < maxItems {
		pageSize := maxItems - len(items)
		if pageSize > redditPageLimit {
			pageSize = redditPageLimit
		}

		query := url.Values{}
		query.Set("sort", "new")
		query.Set("limit", strconv.Itoa(pageSize))
		if after != "" {
			query.Set("after", after)
		}

		body, err := rc.get(ctx, endpoint, query, 0)
		if err != nil {
			return nil, err
		}

		var listing models.RedditListing
		if err := json.Unmarshal(body, &listing); err != nil {
			return nil, fmt.Errorf("[RedditClient] failed to parse listing: %w", err)
		}

		items = append(items, listing.Data.Children...)

		after = listing.Data.After
		if after == "" || len(listing.Data.Children) == 0 {
			break
		}
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items, nil
}

func (rc *RedditClient) get(ctx context.Context, endpoint string, query url.Values, attempt int) ([]byte, error) {
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to parse URL: %w", err)
	}
	if query != nil {
		parsedURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := rc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] authorization kept failing after %d attempts", attempt)
		}
		slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
		rc.RefreshClient()
		return rc.get(ctx, endpoint, query, attempt+1)
	case http.StatusTooManyRequests:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] max retries reached, request failed")
		}
		backoff := INITIAL_BACKOFF << attempt
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
		slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		return rc.get(ctx, endpoint, query, attempt+1)
	case http.StatusNotFound, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, parsedURL.Path)
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	}

	return nil, fmt.Errorf("[RedditClient] unexpected status code %d for %s", resp.StatusCode, parsedURL.Path)
}
