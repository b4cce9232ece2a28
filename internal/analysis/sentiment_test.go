package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/personaforge/internal/models"
)

func sampleComments() []models.RedditComment {
	return []models.RedditComment{
		{Body: "This game is good and the community is great", Subreddit: "gaming", Score: 10},
		{Body: "I hate this update it is terrible", Subreddit: "gaming", Score: -2},
		{Body: "the weather is turning colder today", Subreddit: "gaming", Score: 1},
	}
}

func TestAnalyzeSentimentEmpty(t *testing.T) {
	profile := AnalyzeSentiment(nil)

	assert.Equal(t, "No comments to analyze sentiment", profile.Summary)
	assert.Zero(t, profile.PositiveCount)
	assert.Zero(t, profile.NegativeCount)
	assert.Empty(t, profile.Subreddits)
}

func TestAnalyzeSentimentCountsAndWords(t *testing.T) {
	profile := AnalyzeSentiment(sampleComments())

	assert.Equal(t, 2, profile.PositiveCount)
	assert.Equal(t, 2, profile.NegativeCount)
	assert.Equal(t, []string{"good", "great"}, profile.PositiveWords)
	assert.Equal(t, []string{"hate", "terrible"}, profile.NegativeWords)
	assert.Equal(t, 0.0, profile.SentimentRatio)
	assert.Equal(t, "Balanced emotional expression in comments", profile.Summary)
	assert.Empty(t, profile.Traits)
}

func TestAnalyzeSentimentWordCountedOncePerComment(t *testing.T) {
	profile := AnalyzeSentiment([]models.RedditComment{
		{Body: "good good good and more good things", Subreddit: "test"},
	})

	assert.Equal(t, 1, profile.PositiveCount)
	assert.Equal(t, []string{"good"}, profile.PositiveWords)
}

func TestAnalyzeSentimentRequiresWholeWordMatch(t *testing.T) {
	// "goodness" must not count as "good".
	profile := AnalyzeSentiment([]models.RedditComment{
		{Body: "oh my goodness what happened here", Subreddit: "test"},
	})

	assert.Zero(t, profile.PositiveCount)
	assert.Zero(t, profile.NegativeCount)
}

func TestAnalyzeSentimentSubredditBreakdown(t *testing.T) {
	profile := AnalyzeSentiment(sampleComments())

	require.Contains(t, profile.Subreddits, "gaming")
	sub := profile.Subreddits["gaming"]
	assert.Equal(t, "neutral", sub.Sentiment)
	assert.Equal(t, 0.0, sub.Score)
	assert.Equal(t, 3, sub.Comments)
}

func TestAnalyzeSentimentSubredditBelowThresholdSkipped(t *testing.T) {
	profile := AnalyzeSentiment([]models.RedditComment{
		{Body: "this is a good day for everyone here", Subreddit: "books"},
		{Body: "what a great read that book was", Subreddit: "books"},
	})

	// Two comments is below the reporting threshold.
	assert.NotContains(t, profile.Subreddits, "books")
}

func TestAnalyzeSentimentPositiveSubredditLabel(t *testing.T) {
	comments := []models.RedditComment{
		{Body: "love the new design quite a lot", Subreddit: "books"},
		{Body: "love how the chapters flow here", Subreddit: "books"},
		{Body: "love this author and the writing", Subreddit: "books"},
	}
	profile := AnalyzeSentiment(comments)

	require.Contains(t, profile.Subreddits, "books")
	assert.Equal(t, "positive", profile.Subreddits["books"].Sentiment)

	// "love" also trips the enthusiastic trait over three comments.
	assert.Equal(t, []string{"enthusiastic"}, profile.Traits)
	assert.Equal(t, "Consistently positive and optimistic in communication. Displays enthusiastic tendencies.", profile.Summary)
}

func TestAnalyzeSentimentQuoteBuckets(t *testing.T) {
	profile := AnalyzeSentiment(sampleComments())

	require.Len(t, profile.Samples.Positive, 1)
	require.Len(t, profile.Samples.Negative, 1)
	require.Len(t, profile.Samples.Neutral, 1)

	assert.Equal(t, "this game is good and the community is great", profile.Samples.Positive[0].Text)
	assert.Equal(t, "positive", profile.Samples.Positive[0].VaderLabel)
	assert.Equal(t, "negative", profile.Samples.Negative[0].VaderLabel)
	assert.Equal(t, "the weather is turning colder today", profile.Samples.Neutral[0].Text)
}

func TestAnalyzeSentimentQuoteLengthWindow(t *testing.T) {
	profile := AnalyzeSentiment([]models.RedditComment{
		{Body: "good era", Subreddit: "test"},                         // too short for a quote
		{Body: "good " + strings.Repeat("x", 250), Subreddit: "test"}, // too long
	})

	assert.Equal(t, 2, profile.PositiveCount)
	assert.Empty(t, profile.Samples.Positive)
}

func TestAnalyzeSentimentAxes(t *testing.T) {
	profile := AnalyzeSentiment(sampleComments())

	assert.Equal(t, 1, profile.Axes.ExtrovertCount)
	assert.Equal(t, 0, profile.Axes.IntrovertCount)
	assert.Equal(t, 1.0, profile.Axes.ExtrovertRatio)
	assert.Equal(t, "Extrovert / Intuition / Feeling / Perceiving", profile.Axes.Summary)
}

func TestAnalyzeSentimentDeterministic(t *testing.T) {
	comments := append(sampleComments(), []models.RedditComment{
		{Body: "love the new design quite a lot", Subreddit: "books"},
		{Body: "I doubt this plan will work but maybe", Subreddit: "futurology"},
		{Body: "the best and worst thing about this is the price", Subreddit: "frugal"},
	}...)

	first := AnalyzeSentiment(comments)
	second := AnalyzeSentiment(comments)
	require.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestSecondaryTraitThresholdsScaleWithFullCommentCount(t *testing.T) {
	comments := make([]models.RedditComment, 150)
	for i := range comments {
		body := "nothing notable here today"
		if i < 12 {
			body = "love it"
		}
		comments[i] = models.RedditComment{Body: body, Subreddit: "test"}
	}

	// 12 enthusiastic hits clear 10% of the 100-comment sample but not
	// 10% of all 150 comments.
	profile := AnalyzeSentiment(comments)
	assert.Empty(t, profile.Traits)

	for i := 12; i < 20; i++ {
		comments[i].Body = "love it"
	}
	profile = AnalyzeSentiment(comments)
	assert.Equal(t, []string{"enthusiastic"}, profile.Traits)
}

func TestIntrovertLexiconIncludesSolitaryIdeograph(t *testing.T) {
	profile := AnalyzeSentiment([]models.RedditComment{
		{Body: "spent the evening 独自 again", Subreddit: "test"},
	})

	assert.Equal(t, 1, profile.Axes.IntrovertCount)
	assert.Equal(t, 0, profile.Axes.ExtrovertCount)
}

func TestOverallSummaryTiers(t *testing.T) {
	tests := []struct {
		name               string
		positive, negative int
		want               string
	}{
		{"strongly positive", 3, 1, "Consistently positive and optimistic in communication"},
		{"ratio of exactly two stays in lower tier", 2, 1, "Generally positive in communication with occasional criticism"},
		{"just over 1.2 ratio", 13, 10, "Generally positive in communication with occasional criticism"},
		{"near even", 6, 5, "Balanced emotional expression in comments"},
		{"strongly negative", 1, 3, "Predominantly critical or negative in commentary"},
		{"mildly negative", 1, 2, "Tends toward critical perspectives with some positive elements"},
		{"no sentiment words", 0, 0, "Balanced emotional expression in comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overallSummary(tt.positive, tt.negative))
		})
	}
}

func TestAxisLabel(t *testing.T) {
	assert.Equal(t, "Extrovert", axisLabel(0.7, "Extrovert", "Introvert", "Balanced E/I"))
	assert.Equal(t, "Introvert", axisLabel(0.3, "Extrovert", "Introvert", "Balanced E/I"))
	assert.Equal(t, "Balanced E/I", axisLabel(0.5, "Extrovert", "Introvert", "Balanced E/I"))
	assert.Equal(t, "Balanced E/I", axisLabel(0.6, "Extrovert", "Introvert", "Balanced E/I"))
	assert.Equal(t, "Balanced E/I", axisLabel(0.4, "Extrovert", "Introvert", "Balanced E/I"))
}
