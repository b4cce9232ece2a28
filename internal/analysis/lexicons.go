package analysis

// Keyword pools driving the rule-based engine. All scoring is done by
// whitespace-delimited containment against a lowercased body, counting each
// pool word at most once per comment.

var positiveWords = []string{
	"good", "great", "awesome", "love", "like", "amazing", "excellent", "fantastic",
	"happy", "glad", "wonderful", "nice", "best", "perfect", "enjoy", "pleased",
	"impressive", "exciting", "brilliant", "beautiful", "helpful", "recommend",
}

var negativeWords = []string{
	"bad", "terrible", "hate", "awful", "horrible", "stupid", "worst", "sucks",
	"disappointed", "annoying", "poor", "disappointing", "useless", "waste",
	"frustrating", "ugly", "boring", "dumb", "sad", "angry", "disgusting",
}

var enthusiasticWords = []string{
	"love", "amazing", "awesome", "fantastic", "incredible", "perfect", "brilliant",
}

var analyticalWords = []string{
	"think", "consider", "analyze", "question", "perspective", "opinion", "view", "fact",
}

var skepticalWords = []string{
	"doubt", "skeptical", "suspicious", "questionable", "unsure", "uncertain",
}

// The four bipolar trait axes, two disjoint pools each.

var extrovertWords = []string{
	"party", "social", "people", "friends", "everyone", "group", "team", "community",
	"together", "share", "meet", "talk", "discuss", "outgoing", "network", "public",
}

var introvertWords = []string{
	"alone", "quiet", "myself", "solitude", "private", "personal", "individual",
	"focus", "concentrate", "read", "book", "home", "peace", "calm", "独自",
}

var sensingWords = []string{
	"fact", "detail", "specific", "practical", "concrete", "real", "actual", "evidence",
	"data", "number", "measure", "step", "procedure", "method", "experience", "example",
}

var intuitionWords = []string{
	"idea", "concept", "theory", "possibility", "future", "imagine", "creative", "vision",
	"potential", "abstract", "pattern", "meaning", "symbolic", "innovative", "inspire",
}

var thinkingWords = []string{
	"logic", "rational", "reason", "analysis", "objective", "fair", "truth", "fact",
	"efficient", "system", "principle", "criteria", "evaluate", "judge", "critical",
}

var feelingWords = []string{
	"feel", "emotion", "heart", "care", "love", "empathy", "compassion", "harmony",
	"value", "personal", "relationship", "support", "help", "understand", "appreciate",
}

var judgingWords = []string{
	"plan", "organize", "schedule", "deadline", "decision", "complete", "finish",
	"structure", "order", "control", "goal", "target", "achieve", "commit",
}

var perceivingWords = []string{
	"flexible", "adapt", "spontaneous", "open", "explore", "option", "change",
	"maybe", "perhaps", "different", "variety", "freedom", "casual", "relax",
}

// interestTable maps subreddit-name keywords to interest descriptions.
// First match wins; unmatched subreddits pass through as a generic label.
// Kept as a slice so the scan order is fixed.
var interestTable = []struct {
	keyword  string
	interest string
}{
	{"gaming", "Video games and gaming culture"},
	{"technology", "Technology and tech news"},
	{"programming", "Software development and programming"},
	{"politics", "Political discussions and current events"},
	{"news", "Current events and news"},
	{"sports", "Sports and athletics"},
	{"music", "Music and musical discussions"},
	{"movies", "Films and cinema"},
	{"books", "Literature and reading"},
	{"science", "Scientific topics and research"},
	{"askreddit", "General discussions and Q&A"},
	{"funny", "Humor and entertainment"},
	{"pics", "Photography and visual content"},
	{"worldnews", "International news and events"},
	{"food", "Cooking, recipes, and food culture"},
}
