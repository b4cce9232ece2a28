package analysis

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/personaforge/internal/models"
)

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func removeLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// convertMarkdownToText renders Reddit-flavored markdown and collapses the
// result to a single line of plain text.
func convertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return removeLinks(plainText)
}

// annotateQuote attaches a VADER compound score to a sampled quote.
// Bucket placement stays with the lexicon counts; VADER is deterministic,
// so the annotation does not cost reproducibility.
func annotateQuote(body string) models.Quote {
	sentiment := vaderAnalyzer.PolarityScores(convertMarkdownToText(body))
	score := sentiment.Compound

	label := "neutral"
	if score >= 0.20 {
		label = "positive"
	} else if score <= -0.20 {
		label = "negative"
	}

	return models.Quote{Text: body, VaderCompound: score, VaderLabel: label}
}
