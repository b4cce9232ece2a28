package models

// RedditPost is one submitted post by the analyzed user, shaped the way the
// persona pipeline consumes it. Records are immutable once fetched and are
// scoped to a single generation job.
type RedditPost struct {
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	URL         string  `json:"url"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}

// RedditComment is one comment by the analyzed user.
type RedditComment struct {
	Body       string  `json:"body"`
	URL        string  `json:"url"`
	Subreddit  string  `json:"subreddit"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

type RedditListing struct {
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string              `json:"after"`
	Children []RedditListingItem `json:"children"`
}

type RedditListingItem struct {
	Kind string         `json:"kind"`
	Data RedditItemData `json:"data"`
}

// RedditItemData covers both t3 (post) and t1 (comment) payload fields.
type RedditItemData struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Body        string  `json:"body"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}
