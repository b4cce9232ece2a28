package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/personaforge/internal/models"
)

func TestAnalyzePostingPatternsNoActivity(t *testing.T) {
	patterns := AnalyzePostingPatterns(nil, nil)
	assert.Equal(t, "No activity", patterns.ActivityLevel)
}

func TestAnalyzePostingPatternsContentCreator(t *testing.T) {
	posts := []models.RedditPost{
		{Title: "a", Score: 1, Subreddit: "gaming"},
		{Title: "b", Score: 2, Subreddit: "gaming"},
		{Title: "c", Score: 3, Subreddit: "gaming"},
		{Title: "d", Score: 4, Subreddit: "gaming"},
		{Title: "e", Score: 5, Subreddit: "gaming"},
	}

	patterns := AnalyzePostingPatterns(posts, nil)

	assert.Equal(t, "Active user with 5 total interactions", patterns.ActivityLevel)
	assert.Equal(t, "Content creator - prefers making posts over commenting", patterns.ActivityType)
	assert.Equal(t, 3.0, patterns.AvgPostScore)
	assert.Equal(t, 0.0, patterns.AvgCommentScore)

	described := DescribeEngagementPatterns(patterns)
	assert.Contains(t, described, "Posts receive moderate community engagement")
	assert.Contains(t, described, "Comments receive limited appreciation")
}

func TestAnalyzePostingPatternsRatioThresholds(t *testing.T) {
	post := models.RedditPost{Title: "t", Subreddit: "test"}
	comment := models.RedditComment{Body: "b", Subreddit: "test"}

	posts := func(n int) []models.RedditPost {
		out := make([]models.RedditPost, n)
		for i := range out {
			out[i] = post
		}
		return out
	}
	comments := func(n int) []models.RedditComment {
		out := make([]models.RedditComment, n)
		for i := range out {
			out[i] = comment
		}
		return out
	}

	// Exactly 0.3 post ratio falls to the commenter bucket.
	assert.Equal(t, "Commenter - prefers engaging in discussions",
		AnalyzePostingPatterns(posts(3), comments(7)).ActivityType)
	assert.Equal(t, "Balanced user - mix of posts and comments",
		AnalyzePostingPatterns(posts(4), comments(6)).ActivityType)
	assert.Equal(t, "Content creator - prefers making posts over commenting",
		AnalyzePostingPatterns(posts(8), comments(2)).ActivityType)
}

func TestDescribeEngagementPatternsTiers(t *testing.T) {
	described := DescribeEngagementPatterns(PostingPatterns{
		ActivityLevel:   "Active user with 20 total interactions",
		ActivityType:    "Balanced user - mix of posts and comments",
		AvgPostScore:    15,
		AvgCommentScore: 8,
	})

	assert.Contains(t, described, "Posts tend to receive good engagement from the community")
	assert.Contains(t, described, "Comments are generally well-received")
}
