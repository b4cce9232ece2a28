package analysis

import (
	"sort"
	"strings"

	"github.com/spacesedan/personaforge/internal/models"
)

const topSubredditsForInterests = 5

// TopSubreddits ranks subreddits by combined post+comment frequency,
// most active first. Ties break alphabetically to keep the ordering stable.
func TopSubreddits(posts []models.RedditPost, comments []models.RedditComment) []string {
	counts := map[string]int{}

	for _, p := range posts {
		counts[subredditOrUnknown(p.Subreddit)]++
	}
	for _, c := range comments {
		counts[subredditOrUnknown(c.Subreddit)]++
	}

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

	return subs
}

func subredditOrUnknown(sub string) string {
	if sub == "" {
		return "unknown"
	}
	return sub
}

// ExtractInterests maps the top subreddits through the fixed keyword table.
// The first matching keyword wins; unmatched subreddits pass through as a
// generic label.
func ExtractInterests(topSubreddits []string) string {
	if len(topSubreddits) > topSubredditsForInterests {
		topSubreddits = topSubreddits[:topSubredditsForInterests]
	}

	var interests []string
	for _, sub := range topSubreddits {
		lower := strings.ToLower(sub)
		matched := false
		for _, entry := range interestTable {
			if strings.Contains(lower, entry.keyword) {
				interests = append(interests, entry.interest)
				matched = true
				break
			}
		}
		if !matched {
			interests = append(interests, "Content related to r/"+sub)
		}
	}

	if len(interests) == 0 {
		return "Interests could not be determined from subreddit activity"
	}
	return "\n- " + strings.Join(interests, "\n- ")
}
