package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
)

// DecisionUsecase decides which actions to take on one tweet at a time.
// Decisions for different tweets are independent and may run concurrently;
// the only shared state is the read-only dedup check.
type DecisionUsecase struct {
	model   repo.ModelRepo
	records repo.RecordRepo
	agentID string
}

// NewDecisionUsecase creates a new decision usecase
func NewDecisionUsecase(model repo.ModelRepo, records repo.RecordRepo, agentID string) *DecisionUsecase {
	return &DecisionUsecase{
		model:   model,
		records: records,
		agentID: agentID,
	}
}

// Decide returns the action decision for t, or nil when the tweet is
// skipped. The dedup check runs before any model call; a model failure
// skips this tweet only and never aborts the batch.
func (uc *DecisionUsecase) Decide(ctx context.Context, t domain.Tweet) *domain.Decision {
	recordID := domain.RecordID(t.ID, uc.agentID)
	exists, err := uc.records.HasRecord(ctx, recordID)
	if err != nil {
		// Can't prove the tweet is new; skip rather than risk acting twice.
		fmt.Printf("[Decision] Record check failed for %s: %v\n", t.ID, err)
		return nil
	}
	if exists {
		fmt.Printf("[Decision] Skipping %s: already processed\n", t.ID)
		return nil
	}

	dc := repo.DecisionContext{
		TweetID: t.ID,
		Author:  t.AuthorUsername,
		Text:    t.Text,
	}

	decision, err := uc.model.DecideActions(ctx, dc)
	if errors.Is(err, repo.ErrMalformedDecision) {
		// One retry on malformed output before giving up on this tweet.
		decision, err = uc.model.DecideActions(ctx, dc)
	}
	if err != nil {
		fmt.Printf("[Decision] Model failed for %s: %v\n", t.ID, err)
		return nil
	}

	fmt.Printf("[Decision] %s by @%s: like=%v retweet=%v quote=%v reply=%v (%s)\n",
		t.ID, t.AuthorUsername, decision.Like, decision.Retweet, decision.Quote, decision.Reply, decision.Rationale)
	return decision
}
