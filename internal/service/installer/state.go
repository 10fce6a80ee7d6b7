package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

// RenderEnv formats the collected variables as a .env file, keys sorted.
func (s *InstallState) RenderEnv() string {
	keys := make([]string, 0, len(s.EnvVars))
	for k := range s.EnvVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var content strings.Builder
	for _, k := range keys {
		content.WriteString(fmt.Sprintf("%s=%s\n", k, s.EnvVars[k]))
	}
	return content.String()
}

// SaveEnv writes the .env file into dir. An existing file is never overwritten.
func (s *InstallState) SaveEnv(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return "", fmt.Errorf(".env file already exists at %s", envPath)
	}

	if err := os.WriteFile(envPath, []byte(s.RenderEnv()), 0600); err != nil {
		return "", err
	}
	return envPath, nil
}
