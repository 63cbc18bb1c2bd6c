package core

import (
	"fmt"
	"sync"
)

// StageFactory is a function that creates a stage instance from configuration
type StageFactory func(config map[string]any) (any, error)

// StageRegistry manages stage registration and instantiation
type StageRegistry struct {
	stages map[string]StageFactory
	mu     sync.RWMutex
}

var (
	// Global stage registry
	registry = &StageRegistry{
		stages: make(map[string]StageFactory),
	}
)

// RegisterStage registers a stage factory under a type name. Stage packages
// call this from init so a blank import is enough to make them available.
func RegisterStage(name string, factory StageFactory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.stages[name] = factory
}

// CreateStage creates a stage instance from its registered factory
func CreateStage(stageType string, config map[string]any) (RecordStage, error) {
	registry.mu.RLock()
	factory, exists := registry.stages[stageType]
	registry.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown stage type: %s", stageType)
	}

	stage, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage %s: %w", stageType, err)
	}

	recordStage, ok := stage.(RecordStage)
	if !ok {
		return nil, fmt.Errorf("stage %s does not implement the record stage interface", stageType)
	}

	return recordStage, nil
}

// ListStages returns all registered stage type names
func ListStages() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.stages))
	for name := range registry.stages {
		names = append(names, name)
	}
	return names
}
