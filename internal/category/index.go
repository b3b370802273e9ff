package category

import (
	"slices"
)

// Index is the result of a build: arena tables of categories and pages, the
// output registrations, and bookkeeping the host needs to merge the result.
// Cross references between records are IDs into these tables.
type Index struct {
	// Categories holds every category record. Categories[RootID] is the tree root.
	Categories []*Category
	// Pages holds every generated page, grouped by category in build order.
	Pages []*Page
	// Outputs lists page registrations in order. Later entries for the same
	// path replace earlier ones.
	Outputs []Output
	// Removed lists synthetic source paths the host should drop.
	Removed []string
	// Skipped lists categories that were indexed but not paginated because
	// they have no configuration.
	Skipped []string

	byKey  map[string]CategoryID
	byPath map[string]PageID
}

func newIndex() *Index {
	ix := &Index{
		byKey:  make(map[string]CategoryID),
		byPath: make(map[string]PageID),
	}
	ix.Categories = append(ix.Categories, &Category{
		ID:     RootID,
		Key:    RootKey,
		Path:   RootPath,
		Parent: NoCategory,
		Root:   RootID,
	})
	return ix
}

// Root returns the synthetic tree root.
func (ix *Index) Root() *Category {
	return ix.Categories[RootID]
}

// Category returns the record for id, or nil when id is out of range.
func (ix *Index) Category(id CategoryID) *Category {
	if id < 0 || int(id) >= len(ix.Categories) {
		return nil
	}
	return ix.Categories[id]
}

// Lookup returns the record for a category key. The root is not addressable
// by key.
func (ix *Index) Lookup(key string) (*Category, bool) {
	id, ok := ix.byKey[key]
	if !ok {
		return nil, false
	}
	return ix.Categories[id], true
}

// Keys returns category keys in creation order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, len(ix.Categories)-1)
	for _, c := range ix.Categories[1:] {
		keys = append(keys, c.Key)
	}
	return keys
}

// Page returns the page for id, or nil when id is out of range.
func (ix *Index) Page(id PageID) *Page {
	if id < 0 || int(id) >= len(ix.Pages) {
		return nil
	}
	return ix.Pages[id]
}

// Output returns the page registered last under path. The result is the
// page's canonical record: when page one is registered under both its
// numbered path and its first path, both lookups return the same page, whose
// Path is the first path and whose NumberedPath is the numbered one.
func (ix *Index) Output(path string) (*Page, bool) {
	id, ok := ix.byPath[path]
	if !ok {
		return nil, false
	}
	return ix.Pages[id], true
}

// Paths returns the distinct output paths, sorted.
func (ix *Index) Paths() []string {
	paths := make([]string, 0, len(ix.byPath))
	for p := range ix.byPath {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// PagesOf returns the pages of a category in order.
func (ix *Index) PagesOf(c *Category) []*Page {
	pages := make([]*Page, len(c.Pages))
	for i, id := range c.Pages {
		pages[i] = ix.Pages[id]
	}
	return pages
}

// Walk visits the tree depth-first from the root, children in attach order.
func (ix *Index) Walk(fn func(c *Category, depth int)) {
	var visit func(id CategoryID, depth int)
	visit = func(id CategoryID, depth int) {
		c := ix.Categories[id]
		fn(c, depth)
		for _, child := range c.Children {
			visit(child, depth+1)
		}
	}
	visit(RootID, 0)
}

func (ix *Index) register(path string, id PageID) {
	ix.Outputs = append(ix.Outputs, Output{Path: path, Page: id})
	ix.byPath[path] = id
}
