// Package seed reads the initial book catalogue from a data file.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookshelf/internal/shared"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// tomlFile is the TOML layout: an array of [[books]] tables.
type tomlFile struct {
	Books []shared.Book `toml:"books"`
}

// Load reads books from path. The format is chosen by extension:
// .json (a plain array), .yaml/.yml (a sequence) or .toml ([[books]] tables).
func Load(path string) ([]shared.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	books, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return books, nil
}

// Parse decodes data in the format named by ext and checks every entry has a title.
func Parse(ext string, data []byte) ([]shared.Book, error) {
	var books []shared.Book

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("failed to parse json seed: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("failed to parse yaml seed: %w", err)
		}
	case ".toml":
		var f tomlFile
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse toml seed: %w", err)
		}
		books = f.Books
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	for i, b := range books {
		if strings.TrimSpace(b.Title) == "" {
			return nil, fmt.Errorf("seed entry %d has no title", i)
		}
	}
	return books, nil
}
