package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"sopflow/flow"
)

// Workflow is the on-disk document: a title plus the step list.
type Workflow struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

// LoadFile reads a workflow JSON file and seeds a store from it.
func LoadFile(path string, opts ...Option) (*flow.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow: %w", err)
	}

	var wf Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}

	store := FromSteps(wf.Steps, opts...)
	store.SetTitle(wf.Title)
	return store, nil
}

// SaveFile writes the store's current graph to a workflow JSON file.
func SaveFile(path string, store *flow.Store) error {
	wf := Workflow{
		Title: store.Title(),
		Steps: Steps(store),
	}
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workflow: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
