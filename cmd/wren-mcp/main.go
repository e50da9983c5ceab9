package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/wrenlabs/wren/internal/biz/repo"
	"github.com/wrenlabs/wren/internal/conf"
	"github.com/wrenlabs/wren/internal/data"
	"github.com/wrenlabs/wren/mcpserver"
	"github.com/wrenlabs/wren/xapi"
)

// Standalone MCP server exposing the agent's platform access and record
// store to an MCP host over stdio. Runs against the same record DB as the
// agent but never writes to it.

func main() {
	// MCP speaks on stdout; keep logs on stderr.
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Only the platform credentials matter here; the model API is unused.
	cfg := conf.LoadFromEnv()
	if cfg.X.BearerToken == "" || cfg.X.UserID == "" {
		log.Fatalf("Invalid config: X_BEARER_TOKEN and X_USER_ID are required")
	}

	xClient := xapi.NewClient(cfg.X.BearerToken, cfg.X.UserID)
	queue := xapi.NewRequestQueue(0)
	defer queue.Stop()

	store, err := data.NewStore(cfg.Agent.DBPath)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	platform := data.NewXRepo(xClient, queue)

	callbacks := &mcpserver.Callbacks{
		PostTweet: func(ctx context.Context, text string) (string, error) {
			var id string
			err := queue.Do(ctx, func(ctx context.Context) error {
				var err error
				id, err = xClient.CreateTweet(ctx, xapi.CreateTweetRequest{Text: text})
				return err
			})
			return id, err
		},
		Search: func(ctx context.Context, query string, maxResults int) ([]mcpserver.RecordSummary, error) {
			page, err := platform.SearchTweets(ctx, repo.SearchQuery{
				Query:      query,
				MaxResults: maxResults,
				StartTime:  time.Now().Add(-24 * time.Hour),
			})
			if err != nil {
				return nil, err
			}
			out := make([]mcpserver.RecordSummary, 0, len(page.Tweets))
			for _, t := range page.Tweets {
				out = append(out, mcpserver.RecordSummary{
					TweetID: t.ID,
					URL:     t.URL(),
					Text:    t.Text,
				})
			}
			return out, nil
		},
		RecentRecords: func(ctx context.Context, limit int) ([]mcpserver.RecordSummary, error) {
			records, err := store.RecentRecords(ctx, limit)
			if err != nil {
				return nil, err
			}
			out := make([]mcpserver.RecordSummary, 0, len(records))
			for _, rec := range records {
				out = append(out, mcpserver.RecordSummary{
					TweetID:    rec.TweetID,
					URL:        rec.URL,
					Text:       rec.Text,
					Actions:    rec.Actions,
					RecordedAt: rec.CreatedAt.Format(time.RFC3339),
				})
			}
			return out, nil
		},
		Status: func(ctx context.Context) (*mcpserver.AgentStatus, error) {
			count, err := store.CountRecords(ctx)
			if err != nil {
				return nil, err
			}
			return &mcpserver.AgentStatus{
				AgentID:     cfg.Agent.ID,
				Character:   cfg.Character.Name,
				SearchQuery: cfg.Character.SearchQuery,
				RecordCount: count,
			}, nil
		},
	}

	srv := mcpserver.NewServer(callbacks)
	fmt.Fprintln(os.Stderr, "[MCP] wren-tools server starting on stdio")
	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
