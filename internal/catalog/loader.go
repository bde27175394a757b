// Package catalog loads the dictionary export the word store is bootstrapped
// from. The export is produced offline by the scraping pipeline; at runtime
// it is a plain JSON file read once at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
)

// LoadFile reads a dictionary JSON export and returns its entries.
// Records without a word name are dropped: they cannot be keyed in the
// catalog and would collide on the unique name constraint.
func LoadFile(path string) ([]domain.SourceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a dictionary JSON export.
func Parse(data []byte) ([]domain.SourceEntry, error) {
	var raw []domain.SourceEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file: %w", err)
	}

	entries := make([]domain.SourceEntry, 0, len(raw))
	for _, e := range raw {
		if e.Word == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
