package repo

import (
	"context"
	"errors"

	"github.com/wrenlabs/wren/internal/biz/domain"
)

// ErrMalformedDecision marks model output that did not match the expected
// decision shape. Callers may retry once before skipping the tweet.
var ErrMalformedDecision = errors.New("malformed model decision")

// DecisionContext is the minimal per-tweet context sent to the decision
// model. Kept deliberately terse to bound prompt cost.
type DecisionContext struct {
	TweetID string
	Author  string
	Text    string
}

// ModelRepo is the LLM interface
type ModelRepo interface {
	// DecideActions asks the model which actions to take on a tweet
	DecideActions(ctx context.Context, dc DecisionContext) (*domain.Decision, error)

	// GenerateText generates reply/quote body text from a prompt
	GenerateText(ctx context.Context, prompt string) (string, error)

	// DescribeImage describes an attached image for prompt enrichment
	DescribeImage(ctx context.Context, imageURL string) (string, error)
}
