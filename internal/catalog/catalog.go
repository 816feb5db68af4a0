// Package catalog loads the FAQ catalog. The catalog is read once at startup
// and never mutated afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/symptomatch/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed faqs.json
var defaultCatalog []byte

// Catalog is an ordered, read-only list of FAQ entries.
type Catalog struct {
	entries []models.FAQEntry
	skipped int
	source  string
}

// New wraps entries. The slice is copied.
func New(entries []models.FAQEntry) *Catalog {
	c := &Catalog{entries: append([]models.FAQEntry(nil), entries...), source: "memory"}
	for i := range c.entries {
		if !c.entries[i].Valid() {
			c.skipped++
		}
	}
	return c
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog, ".json")
	if err != nil {
		return nil, fmt.Errorf("parse bundled catalog: %w", err)
	}
	c.source = "bundled"
	return c, nil
}

// Load reads a catalog from path. The format follows the extension: .json
// holds an array of entries, .yaml/.yml a list of entries.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// Parse decodes catalog data in the format named by ext.
func Parse(data []byte, ext string) (*Catalog, error) {
	var entries []models.FAQEntry
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return New(entries), nil
}

// Entries returns the entries in catalog order. Callers must not modify them.
func (c *Catalog) Entries() []models.FAQEntry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Len returns the number of entries, including malformed ones.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Skipped returns the number of entries without a keyword.
func (c *Catalog) Skipped() int {
	if c == nil {
		return 0
	}
	return c.skipped
}

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}
