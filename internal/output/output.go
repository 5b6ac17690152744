package output

import (
	"encoding/json"
	"fmt"
	"os"

	"draftmon/internal/event"
)

// Write persists the cycle artifact as indented UTF-8 JSON, fully replacing
// any previous artifact at path.
func Write(path string, out event.CycleOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cycle output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
