package analysis

import (
	"strings"

	"github.com/spacesedan/personaforge/internal/models"
)

const styleSampleSize = 20

// AnalyzeCommunicationStyle classifies verbosity and punctuation habits over
// the first styleSampleSize comments.
func AnalyzeCommunicationStyle(comments []models.RedditComment) string {
	if len(comments) == 0 {
		return "No comments available for communication analysis"
	}

	sample := comments
	if len(sample) > styleSampleSize {
		sample = sample[:styleSampleSize]
	}

	totalLength := 0
	questionCount := 0
	exclamationCount := 0
	capsCount := 0

	for _, comment := range sample {
		body := comment.Body
		totalLength += len(body)
		if strings.Contains(body, "?") {
			questionCount++
		}
		if strings.Contains(body, "!") {
			exclamationCount++
		}
		if hasEmphasisWord(body) {
			capsCount++
		}
	}

	avgLength := float64(totalLength) / float64(len(sample))
	n := float64(len(sample))

	var traits []string
	switch {
	case avgLength > 200:
		traits = append(traits, "Tends to write detailed, lengthy responses")
	case avgLength < 50:
		traits = append(traits, "Prefers brief, concise communication")
	default:
		traits = append(traits, "Uses moderate-length responses")
	}

	if float64(questionCount) > n*0.3 {
		traits = append(traits, "Frequently asks questions and seeks engagement")
	}
	if float64(exclamationCount) > n*0.2 {
		traits = append(traits, "Expressive and enthusiastic in tone")
	}
	if float64(capsCount) > n*0.1 {
		traits = append(traits, "Occasionally uses emphasis (caps) for strong points")
	}

	return strings.Join(traits, ". ") + "."
}

// hasEmphasisWord reports whether any word longer than two characters is
// fully capitalized.
func hasEmphasisWord(body string) bool {
	for _, word := range strings.Fields(body) {
		if len(word) > 2 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			return true
		}
	}
	return false
}
