package config

import (
	"os"
	"path/filepath"
	"testing"

	"finmodel/pkg/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Errorf("MatchThreshold = %v, want 0.75", cfg.MatchThreshold)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", cfg.OutputDir)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hjson"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Errorf("MatchThreshold = %v, want default 0.75", cfg.MatchThreshold)
	}
}

func TestLoadHJSONWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finmodel.hjson")
	body := `{
		// looser matching for scanned documents
		match_threshold: 0.8
		output_dir: runs
		use_llm_mapper: true
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MatchThreshold != 0.8 {
		t.Errorf("MatchThreshold = %v, want 0.8", cfg.MatchThreshold)
	}
	if cfg.OutputDir != "runs" {
		t.Errorf("OutputDir = %q, want runs", cfg.OutputDir)
	}
	if !cfg.UseLLMMapper {
		t.Error("UseLLMMapper = false, want true")
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hjson")
	if err := os.WriteFile(path, []byte(`{match_threshold: 1.5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for threshold outside (0, 1]")
	}
}

func TestSynonymOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	body := "revenue:\n  - top line haul\nebitda:\n  - operating cash profit\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{SynonymFile: path}
	dict, err := cfg.Synonyms()
	if err != nil {
		t.Fatalf("Synonyms failed: %v", err)
	}

	found := false
	for _, syn := range dict[models.MetricRevenue] {
		if syn == "top line haul" {
			found = true
		}
	}
	if !found {
		t.Error("overlay synonym missing from merged dictionary")
	}
	// Builtins survive the merge.
	if len(dict[models.MetricRevenue]) < 2 {
		t.Errorf("builtin revenue synonyms lost: %v", dict[models.MetricRevenue])
	}
}
