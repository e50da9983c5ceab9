package xapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.x.com"

	// MaxSearchPageSize is the platform's per-call result cap.
	MaxSearchPageSize = 100
)

// Client is a thin X API v2 client. It performs no retries and no
// serialization; retry policy lives in callers and serialization in
// RequestQueue.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
	userID      string // the authenticated agent's user ID
}

// NewClient creates a new X API client for the given agent user
func NewClient(bearerToken, userID string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     defaultBaseURL,
		bearerToken: bearerToken,
		userID:      userID,
	}
}

// SetBaseURL overrides the API endpoint (tests, proxies)
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// Tweet is the wire representation of a tweet
type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	ConversationID   string            `json:"conversation_id"`
	CreatedAt        time.Time         `json:"created_at"`
	PublicMetrics    *PublicMetrics    `json:"public_metrics,omitempty"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets,omitempty"`
	Attachments      *Attachments      `json:"attachments,omitempty"`
}

// PublicMetrics holds engagement counters
type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
}

// ReferencedTweet links a tweet to its parent or quoted tweet
type ReferencedTweet struct {
	Type string `json:"type"` // replied_to, quoted, retweeted
	ID   string `json:"id"`
}

// Attachments holds media keys resolved via the includes block
type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

// User is the wire representation of a user
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Media is the wire representation of an attached media item
type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	PreviewImageURL string `json:"preview_image_url"`
}

// Includes carries expanded objects referenced by tweets
type Includes struct {
	Users []User  `json:"users"`
	Media []Media `json:"media"`
}

// Meta carries pagination state for list responses
type Meta struct {
	NextToken   string `json:"next_token"`
	NewestID    string `json:"newest_id"`
	ResultCount int    `json:"result_count"`
}

// TweetsResponse is a paginated list of tweets
type TweetsResponse struct {
	Data     []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
	Meta     Meta     `json:"meta"`
}

// TweetResponse is a single tweet lookup result
type TweetResponse struct {
	Data     Tweet    `json:"data"`
	Includes Includes `json:"includes"`
}

// SearchRequest describes one page of a recent-search call. SinceID and
// StartTime are mutually exclusive; SinceID wins when both are set.
type SearchRequest struct {
	Query      string
	MaxResults int
	NextToken  string
	SinceID    string
	StartTime  time.Time
}

// SearchRecent fetches one page of recent search results
func (c *Client) SearchRecent(ctx context.Context, req SearchRequest) (*TweetsResponse, error) {
	q := url.Values{}
	q.Set("query", req.Query)
	if req.MaxResults > 0 {
		q.Set("max_results", strconv.Itoa(req.MaxResults))
	}
	if req.NextToken != "" {
		q.Set("next_token", req.NextToken)
	}
	if req.SinceID != "" {
		q.Set("since_id", req.SinceID)
	} else if !req.StartTime.IsZero() {
		q.Set("start_time", req.StartTime.UTC().Format(time.RFC3339))
	}
	addTweetFields(q)

	var out TweetsResponse
	if err := c.get(ctx, "/2/tweets/search/recent", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mentions fetches the agent's mentions timeline
func (c *Client) Mentions(ctx context.Context, count int) (*TweetsResponse, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("max_results", strconv.Itoa(count))
	}
	addTweetFields(q)

	var out TweetsResponse
	if err := c.get(ctx, "/2/users/"+c.userID+"/mentions", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTweet looks up a single tweet by ID
func (c *Client) GetTweet(ctx context.Context, id string) (*TweetResponse, error) {
	q := url.Values{}
	addTweetFields(q)

	var out TweetResponse
	if err := c.get(ctx, "/2/tweets/"+id, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Like likes a tweet on behalf of the agent
func (c *Client) Like(ctx context.Context, tweetID string) error {
	body := map[string]string{"tweet_id": tweetID}
	return c.post(ctx, "/2/users/"+c.userID+"/likes", body, nil)
}

// Retweet retweets a tweet on behalf of the agent
func (c *Client) Retweet(ctx context.Context, tweetID string) error {
	body := map[string]string{"tweet_id": tweetID}
	return c.post(ctx, "/2/users/"+c.userID+"/retweets", body, nil)
}

// CreateTweetRequest is the body for posting a tweet, quote, or reply
type CreateTweetRequest struct {
	Text         string    `json:"text"`
	QuoteTweetID string    `json:"quote_tweet_id,omitempty"`
	Reply        *ReplyRef `json:"reply,omitempty"`
}

// ReplyRef identifies the tweet being replied to
type ReplyRef struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

// CreateTweet posts a tweet and returns the new tweet's ID
func (c *Client) CreateTweet(ctx context.Context, req CreateTweetRequest) (string, error) {
	var out struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/2/tweets", req, &out); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

// addTweetFields requests the expansions the pipeline needs on every read
func addTweetFields(q url.Values) {
	q.Set("tweet.fields", "created_at,author_id,conversation_id,public_metrics,referenced_tweets,attachments")
	q.Set("expansions", "author_id,attachments.media_keys")
	q.Set("media.fields", "url,preview_image_url,type")
	q.Set("user.fields", "username,name")
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and classifies failures into the package's error
// types before returning them.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Code:      resp.StatusCode,
			RateLimit: parseRateLimit(resp.Header),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
		}
	}
	return nil
}

// parseRateLimit extracts quota headers; absent headers map to -1
func parseRateLimit(h http.Header) RateLimit {
	rl := RateLimit{Limit: -1, Remaining: -1, Reset: -1}
	if n, err := strconv.ParseInt(h.Get("x-rate-limit-limit"), 10, 64); err == nil {
		rl.Limit = n
	}
	if n, err := strconv.ParseInt(h.Get("x-rate-limit-remaining"), 10, 64); err == nil {
		rl.Remaining = n
	}
	if n, err := strconv.ParseInt(h.Get("x-rate-limit-reset"), 10, 64); err == nil {
		rl.Reset = n
	}
	return rl
}
