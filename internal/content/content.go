// Package content reads a content directory into the item map the category
// engine works on.
package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/itsmostafa/catpage/internal/category"
)

// DefaultExtensions lists the files whose frontmatter is parsed.
var DefaultExtensions = []string{".md", ".markdown", ".html"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Load walks dir and returns one item per file keyed by its forward-slashed
// path relative to dir. Hidden files and directories are skipped. Files with
// one of the given extensions (DefaultExtensions when empty) have their
// frontmatter parsed; everything else passes through uncategorized.
func Load(dir string, extensions ...string) (map[string]*category.Item, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	items := make(map[string]*category.Item)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s': %w", path, walkErr)
		}

		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path) //nolint:gosec // walking the configured content directory
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", path, err)
		}

		if !slices.Contains(extensions, strings.ToLower(filepath.Ext(name))) {
			items[rel] = &category.Item{Path: rel, Contents: data}
			return nil
		}

		item, err := Parse(rel, data)
		if err != nil {
			return err
		}
		items[rel] = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Parse splits data into frontmatter and body. Frontmatter becomes the
// item's fields and its "category" field the item's category. Files without
// frontmatter become uncategorized items holding the whole file.
func Parse(path string, data []byte) (*category.Item, error) {
	var fields map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &fields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter for %s: %w", path, err)
	}

	if fields == nil {
		fields = make(map[string]any)
	}
	normalizeDate(fields)

	item := &category.Item{
		Path:     path,
		Fields:   fields,
		Contents: body,
	}
	if c, ok := fields["category"].(string); ok {
		item.Category = strings.TrimSpace(c)
	}
	return item, nil
}

// normalizeDate turns a textual date field into a time.Time so items sort
// chronologically.
func normalizeDate(fields map[string]any) {
	s, ok := fields["date"].(string)
	if !ok {
		return
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			fields["date"] = t
			return
		}
	}
}
