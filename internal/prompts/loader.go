// Package prompts provides the externalized LLM prompt texts, stored as
// JSON and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed chat.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	texts    map[string]string
	loadErr  error
)

func load() {
	data, err := promptFiles.ReadFile("chat.json")
	if err != nil {
		loadErr = fmt.Errorf("failed to read embedded prompts: %w", err)
		return
	}
	if err := json.Unmarshal(data, &texts); err != nil {
		loadErr = fmt.Errorf("failed to parse prompts JSON: %w", err)
	}
}

// Get retrieves a prompt by key. Returns an error if the key is not
// present.
func Get(key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}
	text, exists := texts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return text, nil
}

// MustGet retrieves a prompt by key, panicking if not found. Use this for
// prompts that are required at initialization time.
func MustGet(key string) string {
	text, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}
