package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server and pipeline settings.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	MCPServer MCPServerConfig `yaml:"mcpServer"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Extract   ExtractConfig   `yaml:"extract"`
	Match     MatchConfig     `yaml:"match"`
}

// ServerConfig defines web shell settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	PreviewRows    int    `yaml:"previewRows"`
	Sessions       int    `yaml:"sessions"`
	SessionResults int    `yaml:"sessionResults"`
}

// MCPServerConfig defines MCP server settings.
type MCPServerConfig struct {
	Addr string `yaml:"addr"`
	Port int    `yaml:"port"`
}

// SegmenterConfig selects the sentence model.
type SegmenterConfig struct {
	Model string `yaml:"model"`
}

// ExtractConfig defines PDF extraction settings.
type ExtractConfig struct {
	PageSeparator string `yaml:"pageSeparator"`
}

// MatchConfig selects the documents the generate command picks up.
type MatchConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	MaxFileSize int      `yaml:"maxFileSize"`
	// IgnoreFile is an afs URL of a .gitignore-style file with extra exclusions.
	IgnoreFile string `yaml:"ignoreFile"`
}

// LoadConfig reads a YAML config file. A leading ~ in path is expanded to the home directory.
func LoadConfig(path string) (*Config, error) {
	path, err := ExpandUserPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Server.MaxUploadBytes < 0 {
		return nil, fmt.Errorf("config %s: server.maxUploadBytes must not be negative", path)
	}
	return &cfg, nil
}

// ExpandUserPath expands ~ and ~/ prefixes to the current user's home directory.
func ExpandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed[0] != '~' {
		return path, nil
	}
	if trimmed != "~" && !strings.HasPrefix(trimmed, "~/") {
		return "", fmt.Errorf("config: unsupported ~user path: %s", path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if trimmed == "~" {
		return home, nil
	}
	return filepath.Join(home, trimmed[2:]), nil
}
