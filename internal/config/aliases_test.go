package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAliases(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "aliases"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadAliases_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() returned error for missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadAliases() returned nil config")
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("expected empty Aliases map, got %v", cfg.Aliases)
	}
}

func TestLoadAliases_CommentsAndBlankLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	writeAliases(t, dir, `# merge item spellings
# one mapping per line


coke=cola
`)

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 1 {
		t.Errorf("expected 1 alias, got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["coke"]; got != "cola" {
		t.Errorf("Aliases[\"coke\"] = %q, want %q", got, "cola")
	}
}

func TestLoadAliases_ValidLines(t *testing.T) {
	dir := t.TempDir()
	writeAliases(t, dir, "coke=cola\ncrisps=chips\n")

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}

	tests := []struct {
		alias string
		item  string
	}{
		{"coke", "cola"},
		{"crisps", "chips"},
	}
	for _, tt := range tests {
		if got := cfg.Aliases[tt.alias]; got != tt.item {
			t.Errorf("Aliases[%q] = %q, want %q", tt.alias, got, tt.item)
		}
	}
}

func TestLoadAliases_InvalidLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	// Mix of valid and invalid lines.
	writeAliases(t, dir, `noequalssign
=missingalias
soda pop=soda
 =
fries=chips
`)

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 2 {
		t.Errorf("expected 2 aliases (only valid lines), got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["soda pop"]; got != "soda" {
		t.Errorf("Aliases[\"soda pop\"] = %q, want %q", got, "soda")
	}
	if got := cfg.Aliases["fries"]; got != "chips" {
		t.Errorf("Aliases[\"fries\"] = %q, want %q", got, "chips")
	}
}

func TestLoadAliases_MultipleAliases(t *testing.T) {
	dir := t.TempDir()
	writeAliases(t, dir, `# rulemine alias config
# Format: raw-token=canonical-item
coke=cola
pepsi=cola
crisps=chips
fries=chips
`)

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 4 {
		t.Errorf("expected 4 aliases, got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}

	expected := map[string]string{
		"coke":   "cola",
		"pepsi":  "cola",
		"crisps": "chips",
		"fries":  "chips",
	}
	for alias, item := range expected {
		if got := cfg.Aliases[alias]; got != item {
			t.Errorf("Aliases[%q] = %q, want %q", alias, got, item)
		}
	}
}
