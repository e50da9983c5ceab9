package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CharacterConfig defines the agent's persona, loaded from YAML
type CharacterConfig struct {
	Name        string   `yaml:"name"`
	Bio         string   `yaml:"bio"`
	Style       []string `yaml:"style"`
	SearchQuery string   `yaml:"search_query"`

	// Optional prompt overrides. When empty the prompts are composed from
	// the persona fields above.
	DecisionPrompt string `yaml:"decision_prompt"`
	ReplyPrompt    string `yaml:"reply_prompt"`
}

// LoadCharacterConfig loads the character configuration from YAML file
func LoadCharacterConfig(configPath string) (*CharacterConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/character.yaml",
			"./configs/character.yaml",
			"/etc/wren/character.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "character.yaml"))
		}
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, "configs", "character.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	var err error

	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			loadedPath = p
			break
		}
	}

	if data == nil {
		fmt.Println("[Config] No character.yaml found, using defaults")
		return DefaultCharacterConfig(), nil
	}

	fmt.Printf("[Config] Loading character from: %s\n", loadedPath)

	var config CharacterConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse character.yaml: %w", err)
	}

	config.fillDefaults()

	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *CharacterConfig) fillDefaults() {
	defaults := DefaultCharacterConfig()

	if c.Name == "" {
		c.Name = defaults.Name
	}
	if c.Bio == "" {
		c.Bio = defaults.Bio
	}
	if len(c.Style) == 0 {
		c.Style = defaults.Style
	}
	if c.SearchQuery == "" {
		c.SearchQuery = defaults.SearchQuery
	}
}

// persona composes the persona block shared by both prompts
func (c *CharacterConfig) persona() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, an autonomous social media agent.\n\n%s\n", c.Name, c.Bio)
	if len(c.Style) > 0 {
		sb.WriteString("\nStyle:\n")
		for _, s := range c.Style {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	return sb.String()
}

// DecisionSystemPrompt returns the system prompt for the action decision call
func (c *CharacterConfig) DecisionSystemPrompt() string {
	if c.DecisionPrompt != "" {
		return c.DecisionPrompt
	}

	return c.persona() + `
You will be shown one tweet at a time. Decide which engagement actions fit
your persona. Be selective: most tweets deserve no action at all.

Respond with ONLY a JSON object in this exact shape:
{"like": bool, "retweet": bool, "quote": bool, "reply": bool, "rationale": "one short sentence"}

Rules:
- like: the tweet genuinely resonates with your interests
- retweet: you would amplify it to your own followers as-is
- quote: you have something substantial to add on top of it
- reply: a direct response would add value to the conversation
- Never quote and reply to the same tweet
- When in doubt, set everything to false`
}

// ReplySystemPrompt returns the system prompt for reply and quote composition
func (c *CharacterConfig) ReplySystemPrompt() string {
	if c.ReplyPrompt != "" {
		return c.ReplyPrompt
	}

	return c.persona() + `
Write tweet-length responses in your own voice.

Rules:
- Maximum 280 characters
- Output the response text directly, no quotes or prefixes
- No hashtags unless they genuinely fit
- Never mention being an AI or a bot`
}

// DefaultCharacterConfig returns the default character configuration
func DefaultCharacterConfig() *CharacterConfig {
	return &CharacterConfig{
		Name: "Wren",
		Bio:  "A curious observer of software, distributed systems, and the people who build them. Dry humor, genuine enthusiasm for elegant engineering.",
		Style: []string{
			"concise and direct",
			"technically precise without being pedantic",
			"never uses marketing speak",
			"asks good questions instead of lecturing",
		},
		SearchQuery: `("distributed systems" OR "database internals" OR golang) -is:retweet lang:en`,
	}
}
