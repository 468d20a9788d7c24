package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/wricardo/termsnake/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:          "Test Config",
		Description:   "Test configuration",
		Width:         12,
		Height:        8,
		InitialLength: 2,
		TickMillis:    100,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()

	data, err := jsoniter.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	writeRaw(t, dir, filename, string(data))
}

func writeRaw(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

const smallYAML = `name: Small
description: A tight grid
width: 10
height: 10
tick_ms: 90
`

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Test Config" {
			t.Errorf("Expected classic to be the default, got %s", manager.GetDefault().Name)
		}
		if manager.Dir() != dir {
			t.Errorf("Expected dir %s, got %s", dir, manager.Dir())
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		writeRaw(t, dir, "plain.txt", "x")
		if _, err := NewManager(filepath.Join(dir, "plain.txt")); err == nil {
			t.Error("Expected error for a regular file")
		}
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got: %v", err)
		}
		defaultConfig := manager.GetDefault()
		if defaultConfig == nil || defaultConfig.Name != engine.DefaultGameConfig().Name {
			t.Errorf("Expected built-in default, got %+v", defaultConfig)
		}
	})

	t.Run("first valid preset without classic", func(t *testing.T) {
		dir := t.TempDir()
		writeRaw(t, dir, "a_broken.json", "{")
		writeRaw(t, dir, "small.yaml", smallYAML)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Small" {
			t.Errorf("Expected small to be the default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeRaw(t, dir, "small.yaml", smallYAML)
	writeRaw(t, dir, "tiny.yml", "name: Tiny\nwidth: 3\nheight: 3\n")
	writeRaw(t, dir, "unknown.json", `{"name":"x","width":5,"height":5,"speed":3}`)
	writeRaw(t, dir, "unknown.yaml", "name: x\nwidth: 5\nheight: 5\nspeed: 3\n")
	writeRaw(t, dir, "range.json", `{"name":"x","width":0,"height":5}`)
	writeRaw(t, dir, "syntax.json", `{"name":`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"classic", "Test Config", nil},
		{"classic.json", "Test Config", nil},
		{"small", "Small", nil},
		{"tiny", "Tiny", nil},
		{"missing", "", ErrConfigNotFound},
		{"../classic", "", ErrConfigNotFound},
		{"", "", ErrConfigNotFound},
		{"unknown", "", ErrInvalidConfig},
		{"unknown.yaml", "", ErrInvalidConfig},
		{"range", "", ErrInvalidConfig},
		{"syntax", "", ErrInvalidConfig},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config, err := manager.LoadConfig(test.name)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("Expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config.Name != test.want {
				t.Errorf("Expected %s, got %s", test.want, config.Name)
			}
		})
	}
}

func TestManager_LoadConfig_Normalizes(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, dir, "small.yaml", smallYAML)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("small")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.InitialLength != engine.DefaultInitialLength {
		t.Errorf("Expected default initial length, got %d", config.InitialLength)
	}
	if config.TickMillis != 90 {
		t.Errorf("Expected tick 90, got %d", config.TickMillis)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeRaw(t, dir, "classic.yaml", smallYAML)
	writeRaw(t, dir, "small.yaml", smallYAML)
	writeRaw(t, dir, "broken.json", "{")
	writeRaw(t, dir, "notes.txt", "not a preset")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}

	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "classic" || configs[0].Filename != "classic.json" {
		t.Errorf("Expected classic.json first, got %+v", configs[0])
	}
	if configs[1].ConfigID != "small" || configs[1].Width != 10 {
		t.Errorf("Unexpected second config %+v", configs[1])
	}

	reports, err := manager.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("Expected 4 preset files, got %d", len(reports))
	}
	invalid := 0
	for _, r := range reports {
		if r.Err != nil {
			invalid++
			if r.Filename != "broken.json" {
				t.Errorf("Unexpected invalid file %s: %v", r.Filename, r.Err)
			}
		}
	}
	if invalid != 1 {
		t.Errorf("Expected 1 invalid file, got %d", invalid)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeRaw(t, dir, "small.yaml", smallYAML)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("small"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Small" {
		t.Errorf("Expected Small, got %s", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
	if manager.GetDefault().Name != "Small" {
		t.Error("A failed SetDefault must keep the previous default")
	}
}

func TestManager_CachingBehavior(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	first, _ := manager.LoadConfig("classic")

	changed := createValidConfig()
	changed.Name = "Changed"
	writeConfigFile(t, dir, "classic", changed)

	second, _ := manager.LoadConfig("classic")
	if first != second {
		t.Error("Expected cached config to be returned")
	}

	manager.RefreshCache()

	third, err := manager.LoadConfig("classic")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if third.Name != "Changed" {
		t.Errorf("Expected reloaded config, got %s", third.Name)
	}
	if manager.GetDefault().Name != "Changed" {
		t.Errorf("Expected refreshed default, got %s", manager.GetDefault().Name)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeRaw(t, dir, "small.yaml", smallYAML)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "classic"
			if i%2 == 1 {
				name = "small"
			}
			if _, err := manager.LoadConfig(name); err != nil {
				errs <- err
			}
			if _, err := manager.ListConfigs(); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
}
