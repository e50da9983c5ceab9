package data

import (
	"context"
	"fmt"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
	"github.com/wrenlabs/wren/xapi"
)

// xRepo implements the platform repository over the X API client. Every
// call goes through the shared request queue so at most one platform request
// is in flight at a time.
type xRepo struct {
	client *xapi.Client
	queue  *xapi.RequestQueue
}

// NewXRepo creates a platform repository
func NewXRepo(client *xapi.Client, queue *xapi.RequestQueue) repo.PlatformRepo {
	return &xRepo{client: client, queue: queue}
}

// FetchTimeline fetches the agent's mentions timeline
func (r *xRepo) FetchTimeline(ctx context.Context, count int) ([]domain.Tweet, error) {
	var resp *xapi.TweetsResponse
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = r.client.Mentions(ctx, count)
		return err
	})
	if err != nil {
		logRateLimit("mentions", err)
		return nil, err
	}
	return toDomainTweets(resp.Data, resp.Includes), nil
}

// SearchTweets fetches one page of recent search results
func (r *xRepo) SearchTweets(ctx context.Context, q repo.SearchQuery) (*repo.SearchPage, error) {
	var resp *xapi.TweetsResponse
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = r.client.SearchRecent(ctx, xapi.SearchRequest{
			Query:      q.Query,
			MaxResults: q.MaxResults,
			NextToken:  q.PageToken,
			SinceID:    q.SinceID,
			StartTime:  q.StartTime,
		})
		return err
	})
	if err != nil {
		logRateLimit("search", err)
		return nil, err
	}
	return &repo.SearchPage{
		Tweets:    toDomainTweets(resp.Data, resp.Includes),
		NextToken: resp.Meta.NextToken,
		NewestID:  resp.Meta.NewestID,
	}, nil
}

// GetTweet looks up a single tweet by ID
func (r *xRepo) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	var resp *xapi.TweetResponse
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = r.client.GetTweet(ctx, id)
		return err
	})
	if err != nil {
		logRateLimit("tweet lookup", err)
		return nil, err
	}
	tweets := toDomainTweets([]xapi.Tweet{resp.Data}, resp.Includes)
	return &tweets[0], nil
}

// Like likes a tweet
func (r *xRepo) Like(ctx context.Context, tweetID string) error {
	return r.queue.Do(ctx, func(ctx context.Context) error {
		return r.client.Like(ctx, tweetID)
	})
}

// Retweet retweets a tweet
func (r *xRepo) Retweet(ctx context.Context, tweetID string) error {
	return r.queue.Do(ctx, func(ctx context.Context) error {
		return r.client.Retweet(ctx, tweetID)
	})
}

// Quote posts a quote tweet
func (r *xRepo) Quote(ctx context.Context, text, tweetID string) (string, error) {
	var newID string
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		newID, err = r.client.CreateTweet(ctx, xapi.CreateTweetRequest{
			Text:         text,
			QuoteTweetID: tweetID,
		})
		return err
	})
	return newID, err
}

// Reply posts a reply
func (r *xRepo) Reply(ctx context.Context, text, tweetID string) (string, error) {
	var newID string
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		newID, err = r.client.CreateTweet(ctx, xapi.CreateTweetRequest{
			Text:  text,
			Reply: &xapi.ReplyRef{InReplyToTweetID: tweetID},
		})
		return err
	})
	return newID, err
}

// logRateLimit logs quota headers when a call was rate limited
func logRateLimit(endpoint string, err error) {
	if summary := xapi.RateLimitSummary(err); summary != "" {
		fmt.Printf("[X] %s rate limited: %s\n", endpoint, summary)
	}
}

// toDomainTweets converts wire tweets into domain tweets, resolving authors
// and media through the includes block.
func toDomainTweets(tweets []xapi.Tweet, includes xapi.Includes) []domain.Tweet {
	usersByID := make(map[string]xapi.User, len(includes.Users))
	for _, u := range includes.Users {
		usersByID[u.ID] = u
	}
	mediaByKey := make(map[string]xapi.Media, len(includes.Media))
	for _, m := range includes.Media {
		mediaByKey[m.MediaKey] = m
	}

	out := make([]domain.Tweet, 0, len(tweets))
	for _, t := range tweets {
		dt := domain.Tweet{
			ID:             t.ID,
			AuthorID:       t.AuthorID,
			Text:           t.Text,
			ConversationID: t.ConversationID,
			CreatedAt:      t.CreatedAt,
		}
		if u, ok := usersByID[t.AuthorID]; ok {
			dt.AuthorUsername = u.Username
		}
		if t.PublicMetrics != nil {
			dt.Metrics = domain.TweetMetrics{
				Likes:    t.PublicMetrics.LikeCount,
				Retweets: t.PublicMetrics.RetweetCount,
				Replies:  t.PublicMetrics.ReplyCount,
			}
		}
		for _, ref := range t.ReferencedTweets {
			switch ref.Type {
			case "replied_to":
				dt.InReplyToID = ref.ID
			case "quoted":
				dt.QuotedTweetID = ref.ID
			}
		}
		if t.Attachments != nil {
			for _, key := range t.Attachments.MediaKeys {
				if m, ok := mediaByKey[key]; ok {
					if m.URL != "" {
						dt.MediaURLs = append(dt.MediaURLs, m.URL)
					} else if m.PreviewImageURL != "" {
						dt.MediaURLs = append(dt.MediaURLs, m.PreviewImageURL)
					}
				}
			}
		}
		out = append(out, dt)
	}
	return out
}
