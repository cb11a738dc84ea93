// Package config loads runtime settings from the environment, an optional
// HJSON config file, and an optional YAML synonym overlay.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	hjson "github.com/hjson/hjson-go/v4"
	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v2"

	"finmodel/pkg/core/extract"
	"finmodel/pkg/models"
)

// Config holds every tunable for a run. Zero values fall back to the
// defaults applied by Load.
type Config struct {
	// MatchThreshold is the minimum similarity for a fuzzy label match.
	MatchThreshold float64 `json:"match_threshold"`
	// CacheDir is where file-backed extraction caches live.
	CacheDir string `json:"cache_dir"`
	// SynonymFile points at a YAML overlay of extra metric synonyms.
	SynonymFile string `json:"synonym_file"`
	// UseLLMMapper enables the language-model fallback for unmatched labels.
	UseLLMMapper bool `json:"use_llm_mapper"`
	// EDGARUserAgent is sent on SEC requests; the SEC requires a contact.
	EDGARUserAgent string `json:"edgar_user_agent"`
	// OutputDir is where rendered workbooks and reports are written.
	OutputDir string `json:"output_dir"`
}

func defaults() Config {
	return Config{
		MatchThreshold: extract.AcceptThreshold,
		CacheDir:       filepath.Join(".cache", "finmodel", "extractions"),
		OutputDir:      "output",
	}
}

// LoadEnv loads .env into the process environment. A missing file is not
// an error; explicit environment always wins over .env values.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the HJSON config at path, layered over defaults. An empty
// path or missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := hjson.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 1 {
		return cfg, fmt.Errorf("config: match_threshold %v outside (0, 1]", cfg.MatchThreshold)
	}
	return cfg, nil
}

// Synonyms returns the builtin synonym dictionary merged with the YAML
// overlay named by the config, when present.
func (c Config) Synonyms() (extract.SynonymDict, error) {
	base := extract.BuiltinSynonyms()
	if c.SynonymFile == "" {
		return base, nil
	}

	data, err := os.ReadFile(c.SynonymFile)
	if err != nil {
		return nil, fmt.Errorf("config: read synonym file %s: %w", c.SynonymFile, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse synonym file %s: %w", c.SynonymFile, err)
	}

	overlay := make(extract.SynonymDict, len(raw))
	for metric, phrases := range raw {
		overlay[models.Metric(metric)] = phrases
	}
	return base.Merge(overlay), nil
}
