package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/personaforge/internal/models"
)

func TestBuildPromptStructure(t *testing.T) {
	posts := []models.RedditPost{
		{Title: "My setup", Subreddit: "battlestations", Score: 12},
		{Title: "Help with config", Subreddit: "linux", Score: 3},
	}
	comments := []models.RedditComment{
		{Body: "Try the docs first", Subreddit: "linux", Score: 5},
	}

	prompt := BuildPrompt("alice", posts, comments)

	assert.Contains(t, prompt, "Username: alice")
	assert.Contains(t, prompt, "Posts analyzed: 2")
	assert.Contains(t, prompt, "Comments analyzed: 1")
	assert.Contains(t, prompt, "- Average score: 7.5")
	assert.Contains(t, prompt, "battlestations (1)")
	assert.Contains(t, prompt, "Sample titles: My setup; Help with config")
	assert.True(t, strings.HasSuffix(prompt, "PERSONA:"))
}

func TestBuildPromptEmptyActivity(t *testing.T) {
	prompt := BuildPrompt("ghost", nil, nil)
	assert.Contains(t, prompt, "No posts found.")
	assert.Contains(t, prompt, "No comments found.")
}

func TestBuildPromptTruncation(t *testing.T) {
	posts := make([]models.RedditPost, 10)
	for i := range posts {
		posts[i] = models.RedditPost{
			Title:     strings.Repeat("very long title ", 30),
			Subreddit: "longform",
		}
	}

	prompt := BuildPrompt("alice", posts, nil)

	assert.Len(t, prompt, maxPromptLength+len("..."))
	assert.True(t, strings.HasSuffix(prompt, "..."))
}

func TestBuildPromptTruncatesLongCommentSamples(t *testing.T) {
	comments := []models.RedditComment{
		{Body: strings.Repeat("a", 150), Subreddit: "test"},
	}

	prompt := BuildPrompt("alice", nil, comments)
	assert.Contains(t, prompt, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", 101))
}

func TestAcceptGeneratedExtractsMarker(t *testing.T) {
	body := "A thoughtful commenter who engages deeply with technical topics and shares detailed advice with other users."
	raw := "Analyze this Reddit user's activity...\n\nPERSONA: " + body

	text, ok := AcceptGenerated(raw)
	require.True(t, ok)
	assert.Equal(t, body, text)
}

func TestAcceptGeneratedLastMarkerWins(t *testing.T) {
	body := "An enthusiastic hobbyist who posts frequently about hardware builds and answers beginner questions patiently."
	raw := "PERSONA: echoed instructions\nPERSONA: " + body

	text, ok := AcceptGenerated(raw)
	require.True(t, ok)
	assert.Equal(t, body, text)
}

func TestAcceptGeneratedNoMarker(t *testing.T) {
	body := "A pragmatic user focused on troubleshooting threads, usually brief and direct, with a dry sense of humor."

	text, ok := AcceptGenerated(body)
	require.True(t, ok)
	assert.Equal(t, body, text)
}

func TestAcceptGeneratedRejectsShortOutput(t *testing.T) {
	_, ok := AcceptGenerated("PERSONA: too short")
	assert.False(t, ok)

	_, ok = AcceptGenerated("")
	assert.False(t, ok)
}

func TestAcceptGeneratedRejectsPromptEcho(t *testing.T) {
	raw := "PERSONA: " + strings.Repeat("filler ", 20) + "POST ACTIVITY SUMMARY:\n- Total posts: 4"
	_, ok := AcceptGenerated(raw)
	assert.False(t, ok)

	raw = strings.Repeat("filler ", 20) + "COMMENT ACTIVITY SUMMARY: something"
	_, ok = AcceptGenerated(raw)
	assert.False(t, ok)
}
