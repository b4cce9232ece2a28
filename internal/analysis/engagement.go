package analysis

import (
	"fmt"
	"strings"

	"github.com/spacesedan/personaforge/internal/models"
)

// PostingPatterns summarizes how the user splits activity between posting
// and commenting, plus how their content scores.
type PostingPatterns struct {
	ActivityLevel   string
	ActivityType    string
	AvgPostScore    float64
	AvgCommentScore float64
}

// AnalyzePostingPatterns classifies the user's activity split. The 0.7/0.3
// post-ratio thresholds separate creators, balanced users, and commenters.
func AnalyzePostingPatterns(posts []models.RedditPost, comments []models.RedditComment) PostingPatterns {
	totalPosts := len(posts)
	totalComments := len(comments)

	if totalPosts+totalComments == 0 {
		return PostingPatterns{ActivityLevel: "No activity"}
	}

	postRatio := float64(totalPosts) / float64(totalPosts+totalComments)

	var activityType string
	switch {
	case postRatio > 0.7:
		activityType = "Content creator - prefers making posts over commenting"
	case postRatio > 0.3:
		activityType = "Balanced user - mix of posts and comments"
	default:
		activityType = "Commenter - prefers engaging in discussions"
	}

	var avgPostScore, avgCommentScore float64
	if totalPosts > 0 {
		sum := 0
		for _, p := range posts {
			sum += p.Score
		}
		avgPostScore = float64(sum) / float64(totalPosts)
	}
	if totalComments > 0 {
		sum := 0
		for _, c := range comments {
			sum += c.Score
		}
		avgCommentScore = float64(sum) / float64(totalComments)
	}

	return PostingPatterns{
		ActivityLevel:   fmt.Sprintf("Active user with %d total interactions", totalPosts+totalComments),
		ActivityType:    activityType,
		AvgPostScore:    avgPostScore,
		AvgCommentScore: avgCommentScore,
	}
}

// DescribeEngagementPatterns renders the patterns into prose, bucketing the
// average scores into engagement tiers independently for posts and comments.
func DescribeEngagementPatterns(patterns PostingPatterns) string {
	descriptions := []string{patterns.ActivityLevel, patterns.ActivityType}

	switch {
	case patterns.AvgPostScore > 10:
		descriptions = append(descriptions, "Posts tend to receive good engagement from the community")
	case patterns.AvgPostScore > 1:
		descriptions = append(descriptions, "Posts receive moderate community engagement")
	default:
		descriptions = append(descriptions, "Posts receive limited community engagement")
	}

	switch {
	case patterns.AvgCommentScore > 5:
		descriptions = append(descriptions, "Comments are generally well-received")
	case patterns.AvgCommentScore > 1:
		descriptions = append(descriptions, "Comments receive moderate appreciation")
	default:
		descriptions = append(descriptions, "Comments receive limited appreciation")
	}

	return strings.Join(descriptions, ". ") + "."
}
