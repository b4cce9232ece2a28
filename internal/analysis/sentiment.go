package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spacesedan/personaforge/internal/models"
)

const (
	// Bounded sample window for the sentiment scan.
	sentimentSampleSize = 100

	// Sample quotes must fall inside this body-length window.
	quoteMinLen = 20
	quoteMaxLen = 200

	quotesPerBucket = 3

	// A subreddit needs this many sampled comments before its sentiment
	// is reported.
	subredditMinComments = 3
)

// containsWord reports whether w occurs as a whitespace-delimited token in
// the already lowercased, space-padded body.
func containsWord(paddedBody, w string) bool {
	return strings.Contains(paddedBody, " "+w+" ")
}

// countDistinct counts how many pool words appear in the body. Each word
// counts at most once per comment regardless of repetition.
func countDistinct(paddedBody string, pool []string) int {
	n := 0
	for _, w := range pool {
		if containsWord(paddedBody, w) {
			n++
		}
	}
	return n
}

// AnalyzeSentiment scans a bounded sample of comments for lexicon
// membership and produces the full sentiment profile. The function is a
// pure, deterministic transform of its input; identical comments yield a
// byte-identical profile.
func AnalyzeSentiment(comments []models.RedditComment) models.SentimentProfile {
	profile := models.SentimentProfile{
		Subreddits: map[string]models.SubredditSentiment{},
	}
	if len(comments) == 0 {
		profile.Summary = "No comments to analyze sentiment"
		return profile
	}

	sample := comments
	if len(sample) > sentimentSampleSize {
		sample = sample[:sentimentSampleSize]
	}

	var (
		positiveCount, negativeCount                       int
		enthusiasticCount, analyticalCount, skepticalCount int
		axes                                               models.TraitAxes
	)

	foundPositive := map[string]struct{}{}
	foundNegative := map[string]struct{}{}

	type subCounts struct{ positive, negative, total int }
	bySubreddit := map[string]*subCounts{}
	subOrder := []string{}

	for _, comment := range sample {
		body := strings.ToLower(comment.Body)
		padded := " " + body + " "

		commentPositive := 0
		for _, w := range positiveWords {
			if containsWord(padded, w) {
				commentPositive++
				foundPositive[w] = struct{}{}
			}
		}
		commentNegative := 0
		for _, w := range negativeWords {
			if containsWord(padded, w) {
				commentNegative++
				foundNegative[w] = struct{}{}
			}
		}

		enthusiasticCount += countDistinct(padded, enthusiasticWords)
		analyticalCount += countDistinct(padded, analyticalWords)
		skepticalCount += countDistinct(padded, skepticalWords)

		axes.ExtrovertCount += countDistinct(padded, extrovertWords)
		axes.IntrovertCount += countDistinct(padded, introvertWords)
		axes.SensingCount += countDistinct(padded, sensingWords)
		axes.IntuitionCount += countDistinct(padded, intuitionWords)
		axes.ThinkingCount += countDistinct(padded, thinkingWords)
		axes.FeelingCount += countDistinct(padded, feelingWords)
		axes.JudgingCount += countDistinct(padded, judgingWords)
		axes.PerceivingCount += countDistinct(padded, perceivingWords)

		sub := comment.Subreddit
		if sub == "" {
			sub = "unknown"
		}
		sc, ok := bySubreddit[sub]
		if !ok {
			sc = &subCounts{}
			bySubreddit[sub] = sc
			subOrder = append(subOrder, sub)
		}
		sc.positive += commentPositive
		sc.negative += commentNegative
		sc.total++

		if len(body) > quoteMinLen && len(body) < quoteMaxLen {
			switch {
			case commentPositive > 0 && commentNegative == 0 && len(profile.Samples.Positive) < quotesPerBucket:
				profile.Samples.Positive = append(profile.Samples.Positive, annotateQuote(body))
			case commentNegative > 0 && commentPositive == 0 && len(profile.Samples.Negative) < quotesPerBucket:
				profile.Samples.Negative = append(profile.Samples.Negative, annotateQuote(body))
			case commentPositive == 0 && commentNegative == 0 && len(profile.Samples.Neutral) < quotesPerBucket:
				profile.Samples.Neutral = append(profile.Samples.Neutral, annotateQuote(body))
			}
		}

		positiveCount += commentPositive
		negativeCount += commentNegative
	}

	for _, sub := range subOrder {
		sc := bySubreddit[sub]
		if sc.total < subredditMinComments {
			continue
		}
		ratio := float64(sc.positive-sc.negative) / float64(max(1, sc.total))
		label := "neutral"
		if ratio > 0.1 {
			label = "positive"
		} else if ratio < -0.1 {
			label = "negative"
		}
		profile.Subreddits[sub] = models.SubredditSentiment{
			Sentiment: label,
			Score:     ratio,
			Comments:  sc.total,
		}
	}

	profile.PositiveCount = positiveCount
	profile.NegativeCount = negativeCount
	profile.PositiveWords = sortedKeys(foundPositive)
	profile.NegativeWords = sortedKeys(foundNegative)
	profile.SentimentRatio = float64(positiveCount-negativeCount) / float64(max(1, positiveCount+negativeCount))
	profile.Summary = overallSummary(positiveCount, negativeCount)

	profile.Traits = secondaryTraits(len(comments), enthusiasticCount, analyticalCount, skepticalCount)
	if len(profile.Traits) > 0 {
		profile.Summary += fmt.Sprintf(". Displays %s tendencies.", strings.Join(profile.Traits, ", "))
	}

	finishAxes(&axes)
	profile.Axes = axes

	return profile
}

// overallSummary classifies the overall tone by strict positive:negative
// ratio tiers. A ratio of exactly 2.0 falls in the lower tier: the
// comparisons are strict greater-than on integer counts.
func overallSummary(positive, negative int) string {
	switch {
	case positive > negative*2:
		return "Consistently positive and optimistic in communication"
	case positive*10 > negative*12:
		return "Generally positive in communication with occasional criticism"
	case negative > positive*2:
		return "Predominantly critical or negative in commentary"
	case negative*10 > positive*12:
		return "Tends toward critical perspectives with some positive elements"
	default:
		return "Balanced emotional expression in comments"
	}
}

// secondaryTraits flags trait tendencies. Counts come from the bounded
// sample, but thresholds scale with the full comment count.
func secondaryTraits(totalComments, enthusiastic, analytical, skeptical int) []string {
	var traits []string
	n := float64(totalComments)
	if float64(enthusiastic) > n*0.1 {
		traits = append(traits, "enthusiastic")
	}
	if float64(analytical) > n*0.15 {
		traits = append(traits, "analytical")
	}
	if float64(skeptical) > n*0.1 {
		traits = append(traits, "skeptical")
	}
	return traits
}

func finishAxes(axes *models.TraitAxes) {
	axes.ExtrovertRatio = axisRatio(axes.ExtrovertCount, axes.IntrovertCount)
	axes.SensingRatio = axisRatio(axes.SensingCount, axes.IntuitionCount)
	axes.ThinkingRatio = axisRatio(axes.ThinkingCount, axes.FeelingCount)
	axes.JudgingRatio = axisRatio(axes.JudgingCount, axes.PerceivingCount)

	labels := []string{
		axisLabel(axes.ExtrovertRatio, "Extrovert", "Introvert", "Balanced E/I"),
		axisLabel(axes.SensingRatio, "Sensing", "Intuition", "Balanced S/N"),
		axisLabel(axes.ThinkingRatio, "Thinking", "Feeling", "Balanced T/F"),
		axisLabel(axes.JudgingRatio, "Judging", "Perceiving", "Balanced J/P"),
	}
	axes.Summary = strings.Join(labels, " / ")
}

func axisRatio(a, b int) float64 {
	return float64(a) / float64(max(1, a+b))
}

func axisLabel(ratio float64, high, low, balanced string) string {
	if ratio > 0.6 {
		return high
	}
	if ratio < 0.4 {
		return low
	}
	return balanced
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
