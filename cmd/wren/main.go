package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/wrenlabs/wren/internal/biz/usecase"
	"github.com/wrenlabs/wren/internal/conf"
	"github.com/wrenlabs/wren/internal/data"
	"github.com/wrenlabs/wren/internal/service"
	"github.com/wrenlabs/wren/llm"
	"github.com/wrenlabs/wren/xapi"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize clients
	xClient := xapi.NewClient(cfg.X.BearerToken, cfg.X.UserID)
	queue := xapi.NewRequestQueue(0)
	llmClient := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	// Initialize repository layer
	repos, err := data.NewRepositories(
		xClient,
		queue,
		llmClient,
		cfg.Agent.DBPath,
		cfg.Character.DecisionSystemPrompt(),
		cfg.Character.ReplySystemPrompt(),
	)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}

	fmt.Printf("[Agent] Record DB: %s\n", cfg.Agent.DBPath)
	fmt.Printf("[Agent] Character: %s\n", cfg.Character.Name)

	// Initialize usecase layer
	searchUC := usecase.NewSearchUsecase(repos.Platform, repos.Cache)
	decisionUC := usecase.NewDecisionUsecase(repos.Model, repos.Records, cfg.Agent.ID)
	executeUC := usecase.NewExecuteUsecase(repos.Platform, repos.Model, repos.Records, cfg.Agent.ID, usecase.DefaultExecuteConfig())
	pipelineUC := usecase.NewPipelineUsecase(repos.Platform, searchUC, decisionUC, executeUC, usecase.PipelineConfig{
		SearchQuery:    cfg.Character.SearchQuery,
		TimelineCount:  cfg.Agent.TimelineCount,
		SearchMaxTotal: cfg.Agent.SearchMaxTotal,
		MaxActions:     cfg.Agent.MaxActions,
		Concurrency:    cfg.Agent.DecisionConcurrency,
	})

	// Initialize service layer
	poller := service.NewPollingService(pipelineUC, cfg.Agent.PollInterval)
	poller.Start()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	poller.Stop()
	queue.Stop()
	if err := repos.Close(); err != nil {
		fmt.Printf("[Agent] Close failed: %v\n", err)
	}
}
