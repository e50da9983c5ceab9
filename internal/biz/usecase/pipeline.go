package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
)

// PipelineConfig bounds one polling cycle
type PipelineConfig struct {
	SearchQuery    string // empty disables the search path
	TimelineCount  int    // mentions to fetch per cycle, 0 disables
	SearchMaxTotal int    // search results to accumulate per cycle
	MaxActions     int    // scheduled tweets acted on per cycle
	Concurrency    int    // decision fan-out width
}

// ExecutedAction reports what actually happened to one tweet
type ExecutedAction struct {
	TweetID string
	Actions []string
}

// CycleResult summarizes one pipeline run for the caller, which decides
// what to do with it (logging, messaging). Nothing is reported via
// callbacks.
type CycleResult struct {
	RunID     string
	Fetched   int
	Skipped   int
	Decided   int
	Declined  int
	Scheduled int
	Executed  []ExecutedAction
}

// PipelineUsecase runs one full fetch -> decide -> schedule -> execute pass
type PipelineUsecase struct {
	platform repo.PlatformRepo
	search   *SearchUsecase
	decision *DecisionUsecase
	execute  *ExecuteUsecase
	cfg      PipelineConfig
}

// NewPipelineUsecase creates a new pipeline usecase
func NewPipelineUsecase(
	platform repo.PlatformRepo,
	search *SearchUsecase,
	decision *DecisionUsecase,
	execute *ExecuteUsecase,
	cfg PipelineConfig,
) *PipelineUsecase {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &PipelineUsecase{
		platform: platform,
		search:   search,
		decision: decision,
		execute:  execute,
		cfg:      cfg,
	}
}

// RunCycle executes one pipeline pass. Per-tweet failures are contained by
// the lower layers; an error return means the cycle itself could not run.
func (uc *PipelineUsecase) RunCycle(ctx context.Context) (*CycleResult, error) {
	result := &CycleResult{RunID: uuid.NewString()[:8]}

	candidates := uc.fetchCandidates(ctx)
	result.Fetched = len(candidates)
	if len(candidates) == 0 {
		return result, nil
	}

	decided := uc.decideAll(ctx, candidates)
	result.Decided = len(decided)
	result.Skipped = len(candidates) - len(decided)

	// Tweets the model declined entirely still get a record so they are
	// not re-decided next cycle.
	var actionable []domain.Decided
	for _, d := range decided {
		if d.Decision.ActionCount() == 0 {
			result.Declined++
			if err := uc.execute.RecordExecution(ctx, d.Tweet, nil); err != nil {
				fmt.Printf("[Pipeline] Record declined tweet %s: %v\n", d.Tweet.ID, err)
			}
			continue
		}
		actionable = append(actionable, d)
	}

	scheduled := domain.ScheduleActions(actionable, uc.cfg.MaxActions)
	result.Scheduled = len(scheduled)

	for _, d := range scheduled {
		executed := uc.execute.Execute(ctx, d.Tweet, d.Decision)
		if err := uc.execute.RecordExecution(ctx, d.Tweet, executed); err != nil {
			fmt.Printf("[Pipeline] Record execution for %s: %v\n", d.Tweet.ID, err)
		}
		result.Executed = append(result.Executed, ExecutedAction{
			TweetID: d.Tweet.ID,
			Actions: executed,
		})
	}

	return result, nil
}

// fetchCandidates gathers this cycle's candidates from the mentions
// timeline and the character search query, deduplicated by tweet ID. Fetch
// failures shrink the candidate set instead of failing the cycle.
func (uc *PipelineUsecase) fetchCandidates(ctx context.Context) []domain.Tweet {
	var out []domain.Tweet
	seen := make(map[string]bool)

	if uc.cfg.TimelineCount > 0 {
		tweets, err := uc.platform.FetchTimeline(ctx, uc.cfg.TimelineCount)
		if err != nil {
			fmt.Printf("[Pipeline] Timeline fetch failed: %v\n", err)
		}
		for _, t := range tweets {
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		}
	}

	if uc.cfg.SearchQuery != "" && uc.cfg.SearchMaxTotal > 0 {
		sinceID := uc.search.Checkpoint(ctx, uc.cfg.SearchQuery)
		tweets := uc.search.Search(ctx, uc.cfg.SearchQuery, uc.cfg.SearchMaxTotal, sinceID)

		newest := ""
		for _, t := range tweets {
			if newerID(t.ID, newest) {
				newest = t.ID
			}
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		}
		if newest != "" {
			uc.search.SaveCheckpoint(ctx, uc.cfg.SearchQuery, newest)
		}
	}

	return out
}

// decideAll fans decisions out across a bounded worker set. The output
// preserves candidate order; skipped tweets are dropped.
func (uc *PipelineUsecase) decideAll(ctx context.Context, candidates []domain.Tweet) []domain.Decided {
	results := make([]*domain.Decision, len(candidates))
	sem := make(chan struct{}, uc.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, t := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t domain.Tweet) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = uc.decision.Decide(ctx, t)
		}(i, t)
	}
	wg.Wait()

	var decided []domain.Decided
	for i, d := range results {
		if d != nil {
			decided = append(decided, domain.Decided{Tweet: candidates[i], Decision: *d})
		}
	}
	return decided
}

// newerID compares tweet IDs, which are decimal strings of increasing value
func newerID(a, b string) bool {
	if b == "" {
		return true
	}
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
