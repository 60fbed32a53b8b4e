package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"mesher_workers": 0, "dedup_requests": true, "render_distance": 500, "content_dir": "packs/base", "generator": ""}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MesherWorkers != 0 || !cfg.DedupRequests || cfg.ContentDir != "packs/base" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.RenderDistance != MaxRenderDistance {
		t.Fatalf("render distance = %d, want %d", cfg.RenderDistance, MaxRenderDistance)
	}
	if cfg.Generator != "simplex" {
		t.Fatalf("empty generator not defaulted: %q", cfg.Generator)
	}
	if cfg.WindowTitle != "crafter" {
		t.Fatalf("unset field lost its default: %q", cfg.WindowTitle)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.DebugTexCoords = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Seed != 99 || !got.DebugTexCoords {
		t.Fatalf("got %+v", got)
	}
}

func TestSetRenderDistanceClamps(t *testing.T) {
	defer SetRenderDistance(GetRenderDistance())

	SetRenderDistance(0)
	if GetRenderDistance() != MinRenderDistance {
		t.Fatalf("got %d", GetRenderDistance())
	}
	SetRenderDistance(1000)
	if GetRenderDistance() != MaxRenderDistance {
		t.Fatalf("got %d", GetRenderDistance())
	}
	SetRenderDistance(4)
	if GetChunkEvictRadius() != 6 {
		t.Fatalf("evict radius = %d", GetChunkEvictRadius())
	}
}
