package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
)

// ExecuteConfig bounds the executor's composed text
type ExecuteConfig struct {
	MaxTweetLength  int // platform hard limit on posted text
	MaxContextChars int // cap on parent/quoted text injected into prompts
}

// DefaultExecuteConfig returns the platform defaults
func DefaultExecuteConfig() ExecuteConfig {
	return ExecuteConfig{
		MaxTweetLength:  280,
		MaxContextChars: 500,
	}
}

// ExecuteUsecase performs the decided actions for scheduled tweets
type ExecuteUsecase struct {
	platform repo.PlatformRepo
	model    repo.ModelRepo
	records  repo.RecordRepo
	agentID  string
	cfg      ExecuteConfig
}

// NewExecuteUsecase creates a new execute usecase
func NewExecuteUsecase(
	platform repo.PlatformRepo,
	model repo.ModelRepo,
	records repo.RecordRepo,
	agentID string,
	cfg ExecuteConfig,
) *ExecuteUsecase {
	if cfg.MaxTweetLength <= 0 {
		cfg = DefaultExecuteConfig()
	}
	return &ExecuteUsecase{
		platform: platform,
		model:    model,
		records:  records,
		agentID:  agentID,
		cfg:      cfg,
	}
}

// Execute performs the requested actions for one tweet. Each action is
// attempted and error-checked independently: a failed reply never blocks a
// like on the same tweet. Returns the names of the actions that succeeded.
func (uc *ExecuteUsecase) Execute(ctx context.Context, t domain.Tweet, d domain.Decision) []string {
	var executed []string

	if d.Like {
		if err := uc.platform.Like(ctx, t.ID); err != nil {
			fmt.Printf("[Execute] Like failed for %s: %v\n", t.ID, err)
		} else {
			executed = append(executed, domain.ActionLike)
		}
	}

	if d.Retweet {
		if err := uc.platform.Retweet(ctx, t.ID); err != nil {
			fmt.Printf("[Execute] Retweet failed for %s: %v\n", t.ID, err)
		} else {
			executed = append(executed, domain.ActionRetweet)
		}
	}

	if d.Quote {
		if text, err := uc.composeResponse(ctx, t, "quote tweet"); err != nil {
			fmt.Printf("[Execute] Quote text for %s failed: %v\n", t.ID, err)
		} else if newID, err := uc.platform.Quote(ctx, text, t.ID); err != nil {
			fmt.Printf("[Execute] Quote failed for %s: %v\n", t.ID, err)
		} else {
			fmt.Printf("[Execute] Quoted %s -> %s\n", t.ID, newID)
			executed = append(executed, domain.ActionQuote)
		}
	}

	if d.Reply {
		if text, err := uc.composeResponse(ctx, t, "reply"); err != nil {
			fmt.Printf("[Execute] Reply text for %s failed: %v\n", t.ID, err)
		} else if newID, err := uc.platform.Reply(ctx, text, t.ID); err != nil {
			fmt.Printf("[Execute] Reply failed for %s: %v\n", t.ID, err)
		} else {
			fmt.Printf("[Execute] Replied %s -> %s\n", t.ID, newID)
			executed = append(executed, domain.ActionReply)
		}
	}

	return executed
}

// RecordExecution writes the audit record for a tweet. It is the dedup gate
// for future cycles, so it is written even when executed is empty.
func (uc *ExecuteUsecase) RecordExecution(ctx context.Context, t domain.Tweet, executed []string) error {
	rec := domain.NewExecutionRecord(t, uc.agentID, executed)
	if err := uc.records.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("save execution record for %s: %w", t.ID, err)
	}
	return nil
}

// composeResponse builds the enriched prompt for a reply or quote and runs
// it through the model. Thread context and image descriptions are best
// effort; their absence never fails the composition.
func (uc *ExecuteUsecase) composeResponse(ctx context.Context, t domain.Tweet, kind string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compose a %s to this tweet by @%s:\n%s\n", kind, t.AuthorUsername, t.Text)

	if t.InReplyToID != "" {
		if parent, err := uc.platform.GetTweet(ctx, t.InReplyToID); err != nil {
			fmt.Printf("[Execute] Parent lookup for %s failed: %v\n", t.ID, err)
		} else {
			fmt.Fprintf(&sb, "\nIt replies to @%s:\n%s\n",
				parent.AuthorUsername, capText(parent.Text, uc.cfg.MaxContextChars))
		}
	}

	if t.QuotedTweetID != "" {
		if quoted, err := uc.platform.GetTweet(ctx, t.QuotedTweetID); err != nil {
			fmt.Printf("[Execute] Quoted lookup for %s failed: %v\n", t.ID, err)
		} else {
			fmt.Fprintf(&sb, "\nIt quotes @%s:\n%s\n",
				quoted.AuthorUsername, capText(quoted.Text, uc.cfg.MaxContextChars))
		}
	}

	for _, mediaURL := range t.MediaURLs {
		desc, err := uc.model.DescribeImage(ctx, mediaURL)
		if err != nil {
			fmt.Printf("[Execute] Image description failed: %v\n", err)
			continue
		}
		if desc != "" {
			fmt.Fprintf(&sb, "\nAttached image: %s\n", desc)
		}
	}

	text, err := uc.model.GenerateText(ctx, sb.String())
	if err != nil {
		return "", err
	}

	text = domain.ShapeReply(text, uc.cfg.MaxTweetLength)
	if text == "" {
		return "", fmt.Errorf("model produced empty %s text", kind)
	}
	return text, nil
}

// capText limits context text injected into prompts
func capText(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
