// Package config provides configuration management for termsnake.
//
// The config package handles:
//   - Loading game presets from JSON and YAML files
//   - Configuration validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Presets live in the configs directory as .json, .yaml or .yml files. The
// file name without its extension is the preset's config ID. Each preset
// defines:
//   - name and description
//   - width and height of the grid (maximum coordinates, inclusive)
//   - initial_length of the snake (1 to 5, default 1)
//   - tick_ms between moves (default 75)
//
// Unknown fields are rejected so typos surface as errors rather than as
// silently ignored settings.
//
// Available Configurations:
//
//   - classic: 20x20 grid at 75ms per tick
//   - small: a tight 10x10 grid for quick games
//   - wide: a 60x20 field with a longer starting snake
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// The default is the classic preset, else the first valid preset in the
// directory, else engine.DefaultGameConfig.
package config
