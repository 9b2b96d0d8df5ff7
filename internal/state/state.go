// Package state persists the camera topology across restarts: which
// addresses were configured or discovered last time, so the gateway can
// come up with a populated registry before the first bring-up or probe
// reply arrives.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"viscabridge/internal/registry"
)

type State struct {
	Cameras []registry.Camera `json:"cameras"`
}

// LoadOrInit reads path, seeding it with seed if it doesn't exist yet.
func LoadOrInit(path string, seed []registry.Camera) (*State, error) {
	_, err := os.Stat(path)

	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("state: create dir for %s: %w", path, err)
		}
		st := State{Cameras: seed}
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("state: encode initial state: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("state: write %s: %w", path, err)
		}
		log.Printf("[state] initialized %s with %d camera(s)", path, len(seed))
		return &st, nil
	} else if err != nil {
		return nil, fmt.Errorf("state: stat %s: %w", path, err)
	}

	log.Printf("[state] loading %s", path)
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", path, err)
	}
	var stateFromFile State
	if err := json.Unmarshal(fileData, &stateFromFile); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", path, err)
	}
	return &stateFromFile, nil
}

// Save writes the current camera topology atomically (write to a temp
// file, then rename over the target).
func Save(path string, cameras []registry.Camera) error {
	st := State{Cameras: cameras}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("state: create dir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("state: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("state: rename into place: %w", err)
	}
	return nil
}
