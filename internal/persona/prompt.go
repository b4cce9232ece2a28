package persona

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spacesedan/personaforge/internal/models"
)

const (
	// Fixed character budget for the model prompt; longer prompts are
	// truncated to keep inference latency bounded.
	maxPromptLength = 1024

	// Generated personas shorter than this are rejected in favor of the
	// rule-based fallback.
	minPersonaLength = 80

	personaMarker = "PERSONA:"
)

// BuildPrompt summarizes the user's activity into a length-bounded
// generation prompt.
func BuildPrompt(username string, posts []models.RedditPost, comments []models.RedditComment) string {
	prompt := fmt.Sprintf(`Analyze this Reddit user's activity and create a detailed persona:

Username: %s
Posts analyzed: %d
Comments analyzed: %d

POST ACTIVITY SUMMARY:
%s

COMMENT ACTIVITY SUMMARY:
%s

Based on this data, create a comprehensive user persona that includes:
1. Communication style and tone
2. Main interests and topics
3. Personality traits
4. Online behavior patterns
5. Likely demographics

PERSONA:`, username, len(posts), len(comments), summarizePosts(posts), summarizeComments(comments))

	if len(prompt) > maxPromptLength {
		prompt = prompt[:maxPromptLength] + "..."
	}
	return prompt
}

func summarizePosts(posts []models.RedditPost) string {
	if len(posts) == 0 {
		return "No posts found."
	}

	totalScore := 0
	for _, p := range posts {
		totalScore += p.Score
	}
	avgScore := float64(totalScore) / float64(len(posts))

	sampleTitles := make([]string, 0, 5)
	for _, p := range posts {
		if len(sampleTitles) == 5 {
			break
		}
		sampleTitles = append(sampleTitles, p.Title)
	}

	return fmt.Sprintf("- Total posts: %d\n- Average score: %.1f\n- Top subreddits: %s\n- Sample titles: %s",
		len(posts), avgScore, topSubredditsWithCounts(postSubreddits(posts)), strings.Join(sampleTitles, "; "))
}

func summarizeComments(comments []models.RedditComment) string {
	if len(comments) == 0 {
		return "No comments found."
	}

	totalScore := 0
	for _, c := range comments {
		totalScore += c.Score
	}
	avgScore := float64(totalScore) / float64(len(comments))

	samples := make([]string, 0, 3)
	for _, c := range comments {
		if len(samples) == 3 {
			break
		}
		body := c.Body
		if len(body) > 100 {
			body = body[:100] + "..."
		}
		samples = append(samples, body)
	}

	return fmt.Sprintf("- Total comments: %d\n- Average score: %.1f\n- Top subreddits: %s\n- Sample comments: %s",
		len(comments), avgScore, topSubredditsWithCounts(commentSubreddits(comments)), strings.Join(samples, "; "))
}

func postSubreddits(posts []models.RedditPost) map[string]int {
	counts := map[string]int{}
	for _, p := range posts {
		counts[p.Subreddit]++
	}
	return counts
}

func commentSubreddits(comments []models.RedditComment) map[string]int {
	counts := map[string]int{}
	for _, c := range comments {
		counts[c.Subreddit]++
	}
	return counts
}

// topSubredditsWithCounts renders up to the five most active subreddits as
// "name (count)" pairs, ties broken alphabetically for stable output.
func topSubredditsWithCounts(counts map[string]int) string {
	subs := make([]string, 0, len(counts))
	for sub := range counts {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if counts[subs[i]] != counts[subs[j]] {
			return counts[subs[i]] > counts[subs[j]]
		}
		return subs[i] < subs[j]
	})
	if len(subs) > 5 {
		subs = subs[:5]
	}

	parts := make([]string, len(subs))
	for i, sub := range subs {
		parts[i] = fmt.Sprintf("%s (%d)", sub, counts[sub])
	}
	return strings.Join(parts, ", ")
}

// AcceptGenerated decides whether raw model output is usable as the persona
// body. It extracts the text after the PERSONA: marker when the backend
// echoed the prompt, then rejects empty, too-short, or prompt-echoing
// output.
func AcceptGenerated(raw string) (string, bool) {
	text := raw
	if idx := strings.LastIndex(text, personaMarker); idx >= 0 {
		text = text[idx+len(personaMarker):]
	}
	text = strings.TrimSpace(text)

	if len(text) < minPersonaLength {
		return "", false
	}
	// A surviving summary header means the backend returned the scaffold
	// rather than a persona.
	if strings.Contains(text, "POST ACTIVITY SUMMARY:") || strings.Contains(text, "COMMENT ACTIVITY SUMMARY:") {
		return "", false
	}
	return text, true
}
