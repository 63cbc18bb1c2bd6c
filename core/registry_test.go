package core

import (
	"errors"
	"testing"
)

type staticStage struct {
	name string
}

func (s *staticStage) Name() string { return s.name }

func (s *staticStage) Transform(rec *Record) (*Record, bool, error) {
	return rec, true, nil
}

func TestRegisterAndCreateStage(t *testing.T) {
	RegisterStage("test-static", func(config map[string]any) (any, error) {
		return &staticStage{name: "test-static"}, nil
	})

	stage, err := CreateStage("test-static", nil)
	if err != nil {
		t.Fatalf("CreateStage() error: %v", err)
	}
	if stage.Name() != "test-static" {
		t.Errorf("Name() = %q, expected test-static", stage.Name())
	}
}

func TestCreateStageUnknownType(t *testing.T) {
	_, err := CreateStage("no-such-stage", nil)
	if err == nil {
		t.Error("Expected error for unknown stage type")
	}
}

func TestCreateStageFactoryError(t *testing.T) {
	factoryErr := errors.New("bad config")
	RegisterStage("test-failing", func(config map[string]any) (any, error) {
		return nil, factoryErr
	})

	_, err := CreateStage("test-failing", nil)
	if !errors.Is(err, factoryErr) {
		t.Errorf("Expected wrapped factory error, got %v", err)
	}
}

func TestCreateStageWrongInterface(t *testing.T) {
	RegisterStage("test-wrong", func(config map[string]any) (any, error) {
		return "not a stage", nil
	})

	_, err := CreateStage("test-wrong", nil)
	if err == nil {
		t.Error("Expected error for factory returning a non-stage")
	}
}

func TestListStages(t *testing.T) {
	RegisterStage("test-listed", func(config map[string]any) (any, error) {
		return &staticStage{name: "test-listed"}, nil
	})

	found := false
	for _, name := range ListStages() {
		if name == "test-listed" {
			found = true
		}
	}
	if !found {
		t.Error("ListStages() should include registered stage")
	}
}
