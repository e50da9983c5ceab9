package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
	"github.com/wrenlabs/wren/xapi"
)

const (
	// The platform enforces a 7-day search horizon; the buffer keeps the
	// floor safely inside it.
	searchWindow = 7*24*time.Hour - 10*time.Minute

	// Wall-clock budget for a single search call.
	defaultSearchCallTimeout = 30 * time.Second
)

// SearchUsecase accumulates paginated search results and manages the
// since_id checkpoint between polling cycles.
type SearchUsecase struct {
	platform repo.PlatformRepo
	cache    repo.CacheRepo

	callTimeout time.Duration
}

// NewSearchUsecase creates a new search usecase
func NewSearchUsecase(platform repo.PlatformRepo, cache repo.CacheRepo) *SearchUsecase {
	return &SearchUsecase{
		platform:    platform,
		cache:       cache,
		callTimeout: defaultSearchCallTimeout,
	}
}

// Search fetches up to maxTotal tweets matching query. sinceID and the
// 7-day time floor are mutually exclusive; sinceID wins when present.
//
// Failures degrade instead of aborting: a rate limit or any mid-loop error
// returns whatever was accumulated so far, and an invalid sinceID clears the
// stored checkpoint and retries once against the time floor.
func (uc *SearchUsecase) Search(ctx context.Context, query string, maxTotal int, sinceID string) []domain.Tweet {
	if maxTotal <= 0 {
		return nil
	}

	startTime := time.Now().Add(-searchWindow)
	usingSince := sinceID != ""
	pageToken := ""
	var collected []domain.Tweet

	for len(collected) < maxTotal {
		q := repo.SearchQuery{
			Query:      query,
			MaxResults: minInt(maxTotal-len(collected), xapi.MaxSearchPageSize),
			PageToken:  pageToken,
		}
		if usingSince {
			q.SinceID = sinceID
		} else {
			q.StartTime = startTime
		}

		page, err := uc.searchPage(ctx, q)
		if err != nil {
			if xapi.IsRateLimit(err) {
				fmt.Printf("[Search] Rate limited after %d results: %v\n", len(collected), err)
				return collected
			}
			if usingSince && xapi.IsInvalidCursor(err) {
				// The stored checkpoint aged out of the search horizon.
				// Drop it and retry this call with the time floor.
				fmt.Println("[Search] Invalid since_id checkpoint, falling back to time window")
				uc.ClearCheckpoint(ctx, query)
				usingSince = false
				continue
			}
			fmt.Printf("[Search] Page fetch failed after %d results: %v\n", len(collected), err)
			return collected
		}

		if len(page.Tweets) == 0 {
			break
		}

		// Cap mid-page rather than discarding the page.
		remaining := maxTotal - len(collected)
		tweets := page.Tweets
		if len(tweets) > remaining {
			tweets = tweets[:remaining]
		}
		collected = append(collected, tweets...)

		if page.NextToken == "" {
			break
		}
		pageToken = page.NextToken
	}

	return collected
}

// searchPage runs one search call under the per-call wall-clock budget. A
// timed-out call's underlying request may keep running; its result is
// discarded by the queue.
func (uc *SearchUsecase) searchPage(ctx context.Context, q repo.SearchQuery) (*repo.SearchPage, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	defer cancel()
	return uc.platform.SearchTweets(callCtx, q)
}

// Checkpoint returns the cached since_id for query, or "" when none is
// stored.
func (uc *SearchUsecase) Checkpoint(ctx context.Context, query string) string {
	value, err := uc.cache.Get(ctx, checkpointKey(query))
	if err != nil {
		fmt.Printf("[Search] Checkpoint read failed: %v\n", err)
		return ""
	}
	return value
}

// SaveCheckpoint stores the newest seen tweet ID for query
func (uc *SearchUsecase) SaveCheckpoint(ctx context.Context, query, sinceID string) {
	if err := uc.cache.Set(ctx, checkpointKey(query), sinceID); err != nil {
		fmt.Printf("[Search] Checkpoint write failed: %v\n", err)
	}
}

// ClearCheckpoint removes the stored since_id for query
func (uc *SearchUsecase) ClearCheckpoint(ctx context.Context, query string) {
	if err := uc.cache.Delete(ctx, checkpointKey(query)); err != nil {
		fmt.Printf("[Search] Checkpoint delete failed: %v\n", err)
	}
}

func checkpointKey(query string) string {
	return "since_id:" + query
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
