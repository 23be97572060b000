package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadSystemPrompt returns the operator supplied system prompt for name, if any.
// Layout: <PROMPT_DIR>/<provider>/prompt/<name>.system.txt. An empty string and a
// nil error mean no override exists.
func LoadSystemPrompt(dir, name, provider string) (string, error) {
	return loadPrompt(dir, name, "system", provider)
}

func loadPrompt(dir, name, tp, provider string) (string, error) {
	if dir == "" {
		return "", nil
	}
	if provider == "" {
		return "", fmt.Errorf("provider is empty")
	}
	p := filepath.Join(dir, strings.ToLower(provider), "prompt", fmt.Sprintf("%s.%s.txt", name, tp))
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read prompt %s: %w", p, err)
	}
	return strings.TrimSpace(string(b)), nil
}
