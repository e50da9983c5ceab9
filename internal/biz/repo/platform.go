package repo

import (
	"context"
	"time"

	"github.com/wrenlabs/wren/internal/biz/domain"
)

// SearchQuery describes one page of a candidate search. SinceID and
// StartTime are mutually exclusive; implementations prefer SinceID.
type SearchQuery struct {
	Query      string
	MaxResults int
	PageToken  string
	SinceID    string
	StartTime  time.Time
}

// SearchPage is one page of search results
type SearchPage struct {
	Tweets    []domain.Tweet
	NextToken string
	NewestID  string
}

// PlatformRepo is the social platform interface. Implementations classify
// transport failures into xapi error types before returning them, so callers
// never inspect raw error shapes.
type PlatformRepo interface {
	// FetchTimeline fetches the agent's mentions timeline
	FetchTimeline(ctx context.Context, count int) ([]domain.Tweet, error)

	// SearchTweets fetches one page of recent search results
	SearchTweets(ctx context.Context, q SearchQuery) (*SearchPage, error)

	// GetTweet looks up a single tweet by ID
	GetTweet(ctx context.Context, id string) (*domain.Tweet, error)

	// Like likes a tweet
	Like(ctx context.Context, tweetID string) error

	// Retweet retweets a tweet
	Retweet(ctx context.Context, tweetID string) error

	// Quote posts a quote tweet and returns the new tweet's ID
	Quote(ctx context.Context, text, tweetID string) (string, error)

	// Reply posts a reply and returns the new tweet's ID
	Reply(ctx context.Context, text, tweetID string) (string, error)
}
