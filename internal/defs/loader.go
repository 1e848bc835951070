// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Format selects the decoder for a definitions file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from the file extension; YAML is the default.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseCatalog decodes data in the given format and builds a Catalog.
func ParseCatalog(data []byte, format Format, logger *slog.Logger) (*Catalog, error) {
	var file CatalogFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog yaml: %w", err)
		}
	}
	cat, err := NewCatalog(file, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}

// LoadCatalog reads a definitions file and builds a Catalog.
func LoadCatalog(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	cat, err := ParseCatalog(data, FormatFromPath(path), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("loaded catalog", "path", path,
		"enemies", len(cat.Enemies), "towers", len(cat.Towers), "recipes", len(cat.Recipes))
	return cat, nil
}

// DefaultCatalog returns the built-in definitions.
func DefaultCatalog(logger *slog.Logger) (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML, FormatYAML, logger)
}
