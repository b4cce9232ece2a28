package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/personaforge/internal/clients"
	"github.com/spacesedan/personaforge/internal/jobs"
	"github.com/spacesedan/personaforge/internal/models"
)

// ProgressFunc receives stage/progress/message updates during a fetch.
type ProgressFunc func(stage jobs.Stage, progress int, message string)

const minCommentLength = 10

// Scraper collects a user's public posts and comments through the Reddit
// client, filtering out deleted and trivially short content.
type Scraper struct {
	client      *clients.RedditClient
	maxPosts    int
	maxComments int
}

func NewScraper(client *clients.RedditClient, maxPosts, maxComments int) *Scraper {
	return &Scraper{client: client, maxPosts: maxPosts, maxComments: maxComments}
}

func (s *Scraper) ScrapeUser(ctx context.Context, username string, progress ProgressFunc) ([]models.RedditPost, []models.RedditComment, error) {
	progress(jobs.StageFetchingPosts, 0, fmt.Sprintf("Starting to scrape user: %s", username))

	if err := s.client.CheckUserExists(ctx, username); err != nil {
		return nil, nil, err
	}

	rawPosts, err := s.client.FetchUserPosts(ctx, username, s.maxPosts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch posts for %s: %w", username, err)
	}

	posts := make([]models.RedditPost, 0, len(rawPosts))
	for i, item := range rawPosts {
		if !keepPost(item.Data) {
			continue
		}
		posts = append(posts, models.RedditPost{
			Title:       item.Data.Title,
			SelfText:    item.Data.Selftext,
			URL:         item.Data.URL,
			Subreddit:   item.Data.Subreddit,
			Score:       item.Data.Score,
			CreatedUTC:  item.Data.CreatedUTC,
			NumComments: item.Data.NumComments,
		})
		if (i+1)%10 == 0 {
			progress(jobs.StageFetchingPosts, (i+1)*100/max(1, len(rawPosts)),
				fmt.Sprintf("Processed %d posts...", i+1))
		}
	}

	progress(jobs.StageFetchingComments, 0, "Starting to fetch user comments...")

	rawComments, err := s.client.FetchUserComments(ctx, username, s.maxComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch comments for %s: %w", username, err)
	}

	comments := make([]models.RedditComment, 0, len(rawComments))
	for i, item := range rawComments {
		if !keepComment(item.Data) {
			continue
		}
		comments = append(comments, models.RedditComment{
			Body:       item.Data.Body,
			URL:        "https://reddit.com" + item.Data.Permalink,
			Subreddit:  item.Data.Subreddit,
			Score:      item.Data.Score,
			CreatedUTC: item.Data.CreatedUTC,
		})
		if (i+1)%20 == 0 {
			progress(jobs.StageFetchingComments, (i+1)*100/max(1, len(rawComments)),
				fmt.Sprintf("Processed %d comments...", i+1))
		}
	}

	progress(jobs.StageFetchingComments, 100,
		fmt.Sprintf("Scraping complete! Found %d posts and %d comments", len(posts), len(comments)))
	slog.Info("[Scraper] User history collected",
		slog.String("username", username),
		slog.Int("posts", len(posts)),
		slog.Int("comments", len(comments)))

	return posts, comments, nil
}

func keepPost(data models.RedditItemData) bool {
	title := strings.TrimSpace(data.Title)
	return title != "" && title != "[deleted]" && title != "[removed]"
}

func keepComment(data models.RedditItemData) bool {
	body := data.Body
	if body == "[deleted]" || body == "[removed]" {
		return false
	}
	return len(strings.TrimSpace(body)) > minCommentLength
}
