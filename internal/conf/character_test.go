package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCharacterConfig_FillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "character.yaml")
	if err := os.WriteFile(path, []byte("name: Testbird\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCharacterConfig(path)
	if err != nil {
		t.Fatalf("LoadCharacterConfig: %v", err)
	}
	if cfg.Name != "Testbird" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Bio == "" || cfg.SearchQuery == "" || len(cfg.Style) == 0 {
		t.Errorf("empty fields should fall back to defaults: %+v", cfg)
	}
}

func TestDecisionSystemPrompt_ComposesPersona(t *testing.T) {
	cfg := DefaultCharacterConfig()
	prompt := cfg.DecisionSystemPrompt()

	if !strings.Contains(prompt, cfg.Name) {
		t.Error("prompt missing character name")
	}
	if !strings.Contains(prompt, `"like"`) {
		t.Error("prompt missing JSON shape instruction")
	}
}

func TestDecisionSystemPrompt_OverrideWins(t *testing.T) {
	cfg := &CharacterConfig{DecisionPrompt: "custom decision prompt"}
	if got := cfg.DecisionSystemPrompt(); got != "custom decision prompt" {
		t.Errorf("override should be returned verbatim, got %q", got)
	}
}
