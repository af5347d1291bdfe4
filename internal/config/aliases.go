// Package config provides configuration file parsing for rulemine.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the rulemine config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/rulemine if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rulemine"), nil
}

// AliasConfig holds item spelling aliases declared by the user. Each key is
// a raw item token as it appears in a dataset and the value is the canonical
// item name it should be mined as. Aliasing lets datasets with inconsistent
// labels ("coke" vs "cola") mine as one item.
type AliasConfig struct {
	Aliases map[string]string
}

// LoadAliases reads the aliases file at {dir}/aliases and returns the parsed
// config. If the file does not exist, an empty config is returned without an
// error. Invalid or malformed lines are silently skipped.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	path := filepath.Join(dir, "aliases")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Expect exactly one "=" separating the raw token from the
		// canonical item.
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue // no "=" or "=" is first character, skip
		}

		alias := strings.TrimSpace(line[:idx])
		item := strings.TrimSpace(line[idx+1:])

		if alias == "" || item == "" {
			continue // either side is blank, skip
		}

		cfg.Aliases[alias] = item
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
