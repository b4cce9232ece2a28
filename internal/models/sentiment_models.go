package models

// SentimentProfile is the structured output of the rule-based analysis
// engine. It is produced once per job and immutable afterwards; all counts
// come from a bounded sample window and are non-negative.
type SentimentProfile struct {
	Summary        string                        `json:"summary"`
	PositiveCount  int                           `json:"positive_count"`
	NegativeCount  int                           `json:"negative_count"`
	PositiveWords  []string                      `json:"positive_words"`
	NegativeWords  []string                      `json:"negative_words"`
	SentimentRatio float64                       `json:"sentiment_ratio"`
	Traits         []string                      `json:"personality_traits"`
	Axes           TraitAxes                     `json:"mbti"`
	Subreddits     map[string]SubredditSentiment `json:"subreddit_sentiment"`
	Samples        SampleQuotes                  `json:"samples"`
}

// TraitAxes holds the raw counters and derived ratios for the four bipolar
// personality axes. Each ratio is count(poolA)/max(1, poolA+poolB).
type TraitAxes struct {
	ExtrovertCount  int     `json:"extrovert_count"`
	IntrovertCount  int     `json:"introvert_count"`
	ExtrovertRatio  float64 `json:"extrovert_ratio"`
	SensingCount    int     `json:"sensing_count"`
	IntuitionCount  int     `json:"intuition_count"`
	SensingRatio    float64 `json:"sensing_ratio"`
	ThinkingCount   int     `json:"thinking_count"`
	FeelingCount    int     `json:"feeling_count"`
	ThinkingRatio   float64 `json:"thinking_ratio"`
	JudgingCount    int     `json:"judging_count"`
	PerceivingCount int     `json:"perceiving_count"`
	JudgingRatio    float64 `json:"judging_ratio"`
	Summary         string  `json:"summary"`
}

// SubredditSentiment is only emitted for subreddits with at least three
// sampled comments.
type SubredditSentiment struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Comments  int     `json:"comments"`
}

type SampleQuotes struct {
	Positive []Quote `json:"positive"`
	Negative []Quote `json:"negative"`
	Neutral  []Quote `json:"neutral"`
}

// Quote is a sampled comment body annotated with a VADER compound score.
// The annotation is informational only; bucket membership is decided by the
// lexicon counts so the engine stays reproducible.
type Quote struct {
	Text          string  `json:"text"`
	VaderCompound float64 `json:"vader_compound"`
	VaderLabel    string  `json:"vader_label"`
}
