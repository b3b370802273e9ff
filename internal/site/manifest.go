// Package site merges a category build into the host's file set and writes
// the result as a manifest for the rendering stage.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/itsmostafa/catpage/internal/category"
	"github.com/natefinch/atomic"
)

const filePerms = 0o644

// Entry kinds.
const (
	KindSource = "source"
	KindPage   = "page"
)

// Entry is one output file.
type Entry struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`

	// Page entries only.
	Href     string         `json:"href,omitempty"`
	Template string         `json:"template,omitempty"`
	Layout   string         `json:"layout,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Contents string         `json:"contents,omitempty"`
	Page     *PageRef       `json:"pagination,omitempty"`
}

// PageRef is the serialized pagination descriptor. Neighbours are hrefs.
type PageRef struct {
	Name                string   `json:"name"`
	CategoryDisplayName string   `json:"categoryDisplayName,omitempty"`
	CategoryPath        string   `json:"categoryPath"`
	Index               int      `json:"index"`
	Num                 int      `json:"num"`
	Total               int      `json:"total"`
	First               string   `json:"first"`
	Last                string   `json:"last"`
	Previous            string   `json:"previous,omitempty"`
	Next                string   `json:"next,omitempty"`
	Files               []string `json:"files"`
}

// CategoryNode is one category in the serialized tree.
type CategoryNode struct {
	Key         string   `json:"key"`
	Path        string   `json:"path"`
	Href        string   `json:"href"`
	DisplayName string   `json:"displayName,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Children    []string `json:"children,omitempty"`
	Items       int      `json:"items"`
	Pages       int      `json:"pages"`
}

// Manifest is the merged file set, sorted by path.
type Manifest struct {
	Entries    []Entry        `json:"entries"`
	Categories []CategoryNode `json:"categories"`
	Skipped    []string       `json:"skipped,omitempty"`
}

// Merge applies a build to the source items: removed paths are dropped and
// each registered output path becomes a page entry. When a page path equals a
// source path the page wins.
func Merge(items map[string]*category.Item, ix *category.Index) Manifest {
	entries := make(map[string]Entry, len(items)+len(ix.Outputs))

	for path, item := range items {
		if item == nil {
			continue
		}
		entries[path] = Entry{Path: path, Kind: KindSource, Category: item.Category}
	}

	for _, removed := range ix.Removed {
		delete(entries, removed)
	}

	for _, path := range ix.Paths() {
		page, _ := ix.Output(path)
		entries[path] = pageEntry(ix, path, page)
	}

	m := Manifest{
		Entries:    make([]Entry, 0, len(entries)),
		Categories: categoryNodes(ix),
		Skipped:    ix.Skipped,
	}
	for _, e := range entries {
		m.Entries = append(m.Entries, e)
	}
	slices.SortFunc(m.Entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return m
}

// Lookup returns the entry for path.
func (m Manifest) Lookup(path string) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(m.Entries, path, func(e Entry, p string) int {
		return strings.Compare(e.Path, p)
	})
	if !ok {
		return Entry{}, false
	}
	return m.Entries[i], true
}

// Pages returns the number of page entries.
func (m Manifest) Pages() int {
	n := 0
	for _, e := range m.Entries {
		if e.Kind == KindPage {
			n++
		}
	}
	return n
}

func pageEntry(ix *category.Index, path string, page *category.Page) Entry {
	p := page.Pagination
	c := ix.Category(p.Category)

	ref := &PageRef{
		Name:                p.Name,
		CategoryDisplayName: p.CategoryDisplayName,
		CategoryPath:        p.CategoryPath,
		Index:               p.Index,
		Num:                 p.Num,
		Total:               len(p.Pages),
		First:               href(ix, p.First),
		Last:                href(ix, p.Last),
		Previous:            href(ix, p.Previous),
		Next:                href(ix, p.Next),
		Files:               make([]string, len(p.Files)),
	}
	for i, f := range p.Files {
		ref.Files[i] = f.Path
	}

	return Entry{
		Path:     path,
		Kind:     KindPage,
		Category: c.Key,
		Href:     page.Href,
		Template: page.Template,
		Layout:   page.Layout,
		Metadata: page.Metadata,
		Contents: string(page.Contents),
		Page:     ref,
	}
}

func href(ix *category.Index, id category.PageID) string {
	if p := ix.Page(id); p != nil {
		return p.Href
	}
	return ""
}

func categoryNodes(ix *category.Index) []CategoryNode {
	var nodes []CategoryNode
	ix.Walk(func(c *category.Category, _ int) {
		nodes = append(nodes, categoryNode(ix, c))
	})
	if d, ok := ix.Lookup(category.DefaultKey); ok {
		nodes = append(nodes, categoryNode(ix, d))
	}
	return nodes
}

func categoryNode(ix *category.Index, c *category.Category) CategoryNode {
	node := CategoryNode{
		Key:         c.Key,
		Path:        c.Path,
		Href:        c.Href,
		DisplayName: c.DisplayName,
		Items:       len(c.Items),
		Pages:       len(c.Pages),
	}
	if parent := ix.Category(c.Parent); parent != nil {
		node.Parent = parent.Key
	}
	for _, id := range c.Children {
		node.Children = append(node.Children, ix.Category(id).Key)
	}
	return node
}

// Write stores m as indented JSON at path, replacing any previous manifest
// atomically.
func Write(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// atomic.WriteFile does not set permissions for new files
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path is user supplied
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}
