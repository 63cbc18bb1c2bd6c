package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Config represents a declarative chain definition
type Config struct {
	Stages []StageDefinition `yaml:"stages"`
}

// StageDefinition represents a generic stage definition
type StageDefinition struct {
	Type   string         `yaml:"type"`           // Stage type: "timestamp", "colorize", "json", etc.
	Name   string         `yaml:"name,omitempty"` // Optional name to identify this stage instance
	Config map[string]any `yaml:"config"`         // Dynamic configuration for the stage
}

// LoadConfig loads a chain definition from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &config, nil
}

// GetStageConfig extracts and unmarshals stage-specific configuration
func GetStageConfig(stageConfig map[string]any, target any) error {
	// Convert map to YAML then unmarshal to target struct
	data, err := yaml.Marshal(stageConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal stage config: %w", err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal stage config: %w", err)
	}

	return nil
}

// BuildChain instantiates every configured stage through the registry and
// folds them into a single stage. An empty stage list yields the identity
// stage (see All).
func BuildChain(config *Config) (RecordStage, error) {
	stages := make([]RecordStage, 0, len(config.Stages))
	for i, def := range config.Stages {
		stage, err := CreateStage(def.Type, def.Config)
		if err != nil {
			return nil, fmt.Errorf("stage #%d: %w", i+1, err)
		}
		stages = append(stages, stage)
	}
	return All(stages...), nil
}

// DefaultConfig returns a default chain definition
func DefaultConfig() *Config {
	return &Config{
		Stages: []StageDefinition{
			{
				Type: "timestamp",
			},
			{
				Type: "json",
			},
		},
	}
}

// ConfigWatcher monitors a chain definition file for changes and triggers reloads
type ConfigWatcher struct {
	filename    string
	watcher     *fsnotify.Watcher
	onReload    func(*Config)
	stopCh      chan struct{}
	wg          sync.WaitGroup
	lastModTime time.Time
	mu          sync.Mutex
}

// NewConfigWatcher creates a new config file watcher
func NewConfigWatcher(filename string, onReload func(*Config)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Get initial file modification time
	info, err := os.Stat(filename)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cw := &ConfigWatcher{
		filename:    filename,
		watcher:     watcher,
		onReload:    onReload,
		stopCh:      make(chan struct{}),
		lastModTime: info.ModTime(),
	}

	// Watch the directory containing the config file
	// This handles cases where the file is replaced atomically
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	cw.wg.Add(1)
	go cw.watchLoop()

	return cw, nil
}

// Stop stops the config watcher
func (cw *ConfigWatcher) Stop() {
	close(cw.stopCh)
	cw.watcher.Close()
	cw.wg.Wait()
}

// watchLoop runs the file watching loop
func (cw *ConfigWatcher) watchLoop() {
	defer cw.wg.Done()

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			// Check if the event is for our config file
			if event.Name != cw.filename {
				continue
			}

			// Only react to write events
			if event.Op&fsnotify.Write == fsnotify.Write {
				cw.handleFileChange()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("Config watcher error: %v\n", err)

		case <-cw.stopCh:
			return
		}
	}
}

// handleFileChange handles a config file change event
func (cw *ConfigWatcher) handleFileChange() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	// Check if file was actually modified (avoid duplicate events)
	info, err := os.Stat(cw.filename)
	if err != nil {
		fmt.Printf("Error checking config file: %v\n", err)
		return
	}

	if info.ModTime().Equal(cw.lastModTime) {
		return // No actual change
	}

	cw.lastModTime = info.ModTime()

	// Small delay to ensure file write is complete
	time.Sleep(100 * time.Millisecond)

	// Load new config
	config, err := LoadConfig(cw.filename)
	if err != nil {
		fmt.Printf("Error reloading config: %v\n", err)
		return
	}

	fmt.Printf("Config file changed, reloading...\n")
	cw.onReload(config)
}
