package serverlist

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// cachedEntry mirrors Descriptor with yaml tags, the same "one struct, one
// tag per field" loader shape the teacher uses for its YAML content tables
// (internal/data/item.go), repurposed here for a known-servers file instead
// of game content.
type cachedEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Language    string `yaml:"language"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Version     string `yaml:"version"`
	PlayerCount int    `yaml:"player_count"`
	IP          string `yaml:"ip"`
	Port        int    `yaml:"port"`
}

type cacheFile struct {
	Servers []cachedEntry `yaml:"servers"`
}

// DefaultCachePath is "~/.pyreborn/serverlist.yaml", expanded against the
// caller's home directory.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pyreborn", "serverlist.yaml"), nil
}

// SaveCache writes resp's server list to path so a caller can list known
// servers without a live directory round-trip.
func SaveCache(path string, resp *Response) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create serverlist cache dir: %w", err)
	}
	cf := cacheFile{Servers: make([]cachedEntry, len(resp.Servers))}
	for i, d := range resp.Servers {
		cf.Servers[i] = cachedEntry(d)
	}
	data, err := yaml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("marshal serverlist cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write serverlist cache: %w", err)
	}
	return nil
}

// LoadCache reads a previously saved known-servers cache.
func LoadCache(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read serverlist cache: %w", err)
	}
	var cf cacheFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse serverlist cache: %w", err)
	}
	out := make([]Descriptor, len(cf.Servers))
	for i, e := range cf.Servers {
		out[i] = Descriptor(e)
	}
	return out, nil
}
