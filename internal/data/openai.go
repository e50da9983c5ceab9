package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
	"github.com/wrenlabs/wren/llm"
)

// modelRepo implements the model repository over the LLM client. The system
// prompts carry the agent's character; they are injected at construction so
// usecases never build persona strings.
type modelRepo struct {
	client         *llm.Client
	decisionPrompt string
	replyPrompt    string
}

// NewModelRepo creates a model repository
func NewModelRepo(client *llm.Client, decisionPrompt, replyPrompt string) repo.ModelRepo {
	return &modelRepo{
		client:         client,
		decisionPrompt: decisionPrompt,
		replyPrompt:    replyPrompt,
	}
}

// DecideActions asks the model which actions to take on a tweet
func (r *modelRepo) DecideActions(ctx context.Context, dc repo.DecisionContext) (*domain.Decision, error) {
	tweetContext := fmt.Sprintf("Tweet ID: %s\nAuthor: @%s\nText: %s", dc.TweetID, dc.Author, dc.Text)

	decision, err := r.client.DecideActions(r.decisionPrompt, tweetContext)
	if err != nil {
		if errors.Is(err, llm.ErrMalformedDecision) {
			return nil, fmt.Errorf("%w: %v", repo.ErrMalformedDecision, err)
		}
		return nil, err
	}

	return &domain.Decision{
		Like:      decision.Like,
		Retweet:   decision.Retweet,
		Quote:     decision.Quote,
		Reply:     decision.Reply,
		Rationale: decision.Rationale,
	}, nil
}

// GenerateText generates reply/quote body text
func (r *modelRepo) GenerateText(ctx context.Context, prompt string) (string, error) {
	return r.client.Generate(r.replyPrompt, prompt)
}

// DescribeImage describes an attached image
func (r *modelRepo) DescribeImage(ctx context.Context, imageURL string) (string, error) {
	return r.client.DescribeImage(imageURL)
}
