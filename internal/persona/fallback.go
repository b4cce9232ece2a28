package persona

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spacesedan/personaforge/internal/analysis"
	"github.com/spacesedan/personaforge/internal/models"
)

// FallbackPersona synthesizes the persona deterministically from the same
// records the model would have seen. Reproducibility is the point: identical
// input yields byte-identical output.
func FallbackPersona(username string, posts []models.RedditPost, comments []models.RedditComment, profile models.SentimentProfile) string {
	topSubreddits := analysis.TopSubreddits(posts, comments)
	patterns := analysis.AnalyzePostingPatterns(posts, comments)

	mostActive := topSubreddits
	if len(mostActive) > 3 {
		mostActive = mostActive[:3]
	}

	return fmt.Sprintf(`REDDIT USER PERSONA: %s

ACTIVITY OVERVIEW:
- Posts: %d
- Comments: %d
- Most active in: %s

INTERESTS:
Based on subreddit activity, this user is interested in:
%s

COMMUNICATION STYLE:
%s

ENGAGEMENT PATTERNS:
%s

SENTIMENT ANALYSIS:
%s
`,
		username,
		len(posts),
		len(comments),
		strings.Join(mostActive, ", "),
		analysis.ExtractInterests(topSubreddits),
		analysis.AnalyzeCommunicationStyle(comments),
		analysis.DescribeEngagementPatterns(patterns),
		FormatSentimentAnalysis(profile))
}

// FormatSentimentAnalysis renders the profile into the prose block used in
// persona output.
func FormatSentimentAnalysis(profile models.SentimentProfile) string {
	result := []string{profile.Summary}

	totalSentimentWords := profile.PositiveCount + profile.NegativeCount
	if totalSentimentWords > 0 {
		positivePercent := int(float64(profile.PositiveCount)/float64(totalSentimentWords)*100 + 0.5)
		result = append(result, fmt.Sprintf("Sentiment breakdown: %d%% positive, %d%% negative sentiment words found",
			positivePercent, 100-positivePercent))
	}

	if len(profile.PositiveWords) > 0 {
		words := profile.PositiveWords
		if len(words) > 5 {
			words = words[:5]
		}
		result = append(result, "Frequently uses positive words: "+strings.Join(words, ", "))
	}

	if len(profile.Traits) > 0 {
		result = append(result, "Communication traits: "+strings.Join(profile.Traits, ", "))
	}

	positiveSubs := positiveSubreddits(profile)
	if len(positiveSubs) > 0 {
		result = append(result, "Most positive in: "+strings.Join(positiveSubs, ", "))
	}

	return strings.Join(result, "\n")
}

func positiveSubreddits(profile models.SentimentProfile) []string {
	var subs []string
	for sub, info := range profile.Subreddits {
		if info.Sentiment == "positive" {
			subs = append(subs, "r/"+sub)
		}
	}
	// Map iteration order is random; sort so identical profiles render
	// identically.
	sort.Strings(subs)
	if len(subs) > 3 {
		subs = subs[:3]
	}
	return subs
}
