package domain

import "time"

// Tweet represents a fetched timeline or search item. It is immutable once
// fetched; the decision and execution stages read it but never mutate it.
type Tweet struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Text           string
	ConversationID string
	CreatedAt      time.Time
	InReplyToID    string // parent tweet ID when this tweet is a reply
	QuotedTweetID  string // quoted tweet ID when this tweet quotes another
	MediaURLs      []string
	Metrics        TweetMetrics
}

// TweetMetrics holds the public engagement counters
type TweetMetrics struct {
	Likes    int
	Retweets int
	Replies  int
}

// URL returns the permalink for the tweet
func (t *Tweet) URL() string {
	return "https://x.com/" + t.AuthorUsername + "/status/" + t.ID
}

// IsReply checks if the tweet replies to another tweet
func (t *Tweet) IsReply() bool {
	return t.InReplyToID != ""
}

// IsQuote checks if the tweet quotes another tweet
func (t *Tweet) IsQuote() bool {
	return t.QuotedTweetID != ""
}
