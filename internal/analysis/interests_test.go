package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/personaforge/internal/models"
)

func TestTopSubredditsOrdering(t *testing.T) {
	posts := []models.RedditPost{
		{Subreddit: "zebra"},
		{Subreddit: "zebra"},
	}
	comments := []models.RedditComment{
		{Subreddit: "apple"},
		{Subreddit: "apple"},
		{Subreddit: "mango"},
		{Subreddit: "mango"},
		{Subreddit: "mango"},
	}

	// Ties break alphabetically.
	assert.Equal(t, []string{"mango", "apple", "zebra"}, TopSubreddits(posts, comments))
}

func TestTopSubredditsUnknownBucket(t *testing.T) {
	comments := []models.RedditComment{{Subreddit: ""}}
	assert.Equal(t, []string{"unknown"}, TopSubreddits(nil, comments))
}

func TestExtractInterests(t *testing.T) {
	got := ExtractInterests([]string{"gaming", "AskReddit", "learnprogramming", "mechmarket"})

	assert.Equal(t, "\n- Video games and gaming culture"+
		"\n- General discussions and Q&A"+
		"\n- Software development and programming"+
		"\n- Content related to r/mechmarket", got)
}

func TestExtractInterestsEmpty(t *testing.T) {
	assert.Equal(t, "Interests could not be determined from subreddit activity", ExtractInterests(nil))
}

func TestExtractInterestsCapsAtFive(t *testing.T) {
	subs := []string{"a", "b", "c", "d", "e", "f"}
	got := ExtractInterests(subs)
	assert.Equal(t, 5, strings.Count(got, "\n- "))
	assert.NotContains(t, got, "r/f")
}
