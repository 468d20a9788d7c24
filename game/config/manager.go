package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/termsnake/game/engine"
	"github.com/wricardo/termsnake/game/service"
)

// DefaultConfigName is the preset preferred as the default.
const DefaultConfigName = "classic"

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Extensions lists the preset file extensions in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

var strictJSON = jsoniter.Config{
	EscapeHTML:            true,
	SortMapKeys:           true,
	DisallowUnknownFields: true,
}.Froze()

// FileReport is the outcome of loading one preset file.
type FileReport struct {
	Filename string
	ConfigID string
	Config   *engine.GameConfig
	Err      error
}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	info, err := os.Stat(configDir)
	if err != nil {
		return nil, errors.Wrapf(err, "config directory %s", configDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("config path is not a directory: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.loadDefaultConfig()

	return m, nil
}

// Dir returns the directory presets are read from.
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadConfig loads a configuration by name. The name may carry its file
// extension; otherwise each of Extensions is tried in turn.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	config, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// Scan loads every preset file in the directory, valid or not.
func (m *Manager) Scan() ([]FileReport, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config directory")
	}

	var reports []FileReport
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		reports = append(reports, FileReport{
			Filename: entry.Name(),
			ConfigID: configID(entry.Name()),
			Config:   config,
			Err:      err,
		})
	}

	return reports, nil
}

// ListConfigs returns information about all valid configurations. When two
// files share a config ID, the first in directory order wins.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	reports, err := m.Scan()
	if err != nil {
		return nil, err
	}

	configs := make([]*service.ConfigInfo, 0, len(reports))
	seen := make(map[string]bool)

	for _, r := range reports {
		if r.Err != nil || seen[r.ConfigID] {
			continue
		}
		seen[r.ConfigID] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:      r.Filename,
			ConfigID:      r.ConfigID, // This is the identifier to use for session creation
			Name:          r.Config.Name,
			Description:   r.Config.Description,
			Width:         r.Config.Width,
			Height:        r.Config.Height,
			InitialLength: r.Config.InitialLength,
			TickMillis:    r.Config.TickMillis,
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached configurations and reselects the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// loadDefaultConfig selects the default: the classic preset, else the first
// valid preset, else the built-in configuration.
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		config = engine.DefaultGameConfig()
		if configs, listErr := m.ListConfigs(); listErr == nil && len(configs) > 0 {
			if first, loadErr := m.LoadConfig(configs[0].Filename); loadErr == nil {
				config = first
			}
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// resolve maps a config name to an existing file.
func (m *Manager) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.WithMessagef(ErrConfigNotFound, "%q", name)
	}

	candidates := []string{name}
	for _, ext := range Extensions {
		candidates = append(candidates, name+ext)
	}

	for _, candidate := range candidates {
		path := filepath.Join(m.configDir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", errors.WithMessagef(ErrConfigNotFound, "%q", name)
}

// loadFile decodes, normalizes and validates one preset file.
func loadFile(path string) (*engine.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config engine.GameConfig
	if err := decode(path, data, &config); err != nil {
		return nil, errors.WithMessagef(ErrInvalidConfig, "%s: %v", filepath.Base(path), err)
	}

	config.Normalize()
	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, errors.WithMessagef(ErrInvalidConfig, "%s: %v", filepath.Base(path), err)
	}

	return &config, nil
}

// decode picks the decoder from the file extension. Unknown fields are
// rejected by both.
func decode(path string, data []byte, config *engine.GameConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(config)
	default:
		return strictJSON.Unmarshal(data, config)
	}
}

func isPresetFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func configID(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
