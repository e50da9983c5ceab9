package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	// X platform configuration
	X XConfig

	// OpenAI-compatible model configuration
	OpenAI OpenAIConfig

	// Agent loop configuration
	Agent AgentConfig

	// Character configuration (loaded from YAML)
	Character *CharacterConfig

	// Debug mode
	Debug bool
}

// XConfig contains X API configuration
type XConfig struct {
	BearerToken string
	UserID      string
	Username    string
}

// OpenAIConfig contains model API configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AgentConfig contains agent loop configuration
type AgentConfig struct {
	ID                  string
	PollInterval        time.Duration
	MaxActions          int
	TimelineCount       int
	SearchMaxTotal      int
	DecisionConcurrency int
	DBPath              string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Record DB path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".wren", "agent.db")
	}

	agentID := os.Getenv("AGENT_ID")
	if agentID == "" {
		agentID = "wren"
	}

	pollSeconds := envInt("POLL_INTERVAL_SECONDS", 120)
	maxActions := envInt("MAX_ACTIONS_PER_CYCLE", 5)
	timelineCount := envInt("TIMELINE_FETCH_COUNT", 20)
	searchMaxTotal := envInt("SEARCH_MAX_TOTAL", 40)
	decisionConcurrency := envInt("DECISION_CONCURRENCY", 4)

	// Load character from YAML. An unparseable file falls back to the
	// defaults rather than starting with no persona at all.
	character, err := LoadCharacterConfig(os.Getenv("CHARACTER_CONFIG_PATH"))
	if err != nil {
		fmt.Printf("[Config] Character load failed, using defaults: %v\n", err)
		character = DefaultCharacterConfig()
	}

	return &Config{
		X: XConfig{
			BearerToken: os.Getenv("X_BEARER_TOKEN"),
			UserID:      os.Getenv("X_USER_ID"),
			Username:    os.Getenv("X_USERNAME"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   os.Getenv("OPENAI_MODEL"),
		},
		Agent: AgentConfig{
			ID:                  agentID,
			PollInterval:        time.Duration(pollSeconds) * time.Second,
			MaxActions:          maxActions,
			TimelineCount:       timelineCount,
			SearchMaxTotal:      searchMaxTotal,
			DecisionConcurrency: decisionConcurrency,
			DBPath:              dbPath,
		},
		Character: character,
		Debug:     os.Getenv("DEBUG") == "true",
	}
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.X.BearerToken == "" {
		return &ConfigError{Field: "X_BEARER_TOKEN", Message: "required"}
	}
	if c.X.UserID == "" {
		return &ConfigError{Field: "X_USER_ID", Message: "required"}
	}
	if c.OpenAI.APIKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
