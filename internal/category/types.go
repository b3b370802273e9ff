package category

import (
	"strings"
)

// CategoryID addresses a Category in an Index.
type CategoryID int

// PageID addresses a Page in an Index.
type PageID int

const (
	// NoCategory marks an absent category reference (the root's parent).
	NoCategory CategoryID = -1
	// NoPage marks an absent page reference (page one's previous, the last page's next).
	NoPage PageID = -1
	// RootID is the synthetic tree root. It is always the first category.
	RootID CategoryID = 0
)

const (
	// Delimiter separates the segments of a category key.
	Delimiter = "."
	// RootKey is the key of the synthetic tree root.
	RootKey = "root"
	// RootPath is the categoryPath of the synthetic tree root.
	RootPath = "."
	// DefaultKey is the bucket that collects every categorized item.
	DefaultKey = "default"
)

// Item is a single content record owned by the host pipeline.
type Item struct {
	// Path is the item's source location, forward-slashed. Assigned by the indexer.
	Path string

	// Category is the dot-delimited category key. Empty means uncategorized.
	Category string

	// Fields holds arbitrary metadata (usually frontmatter).
	Fields map[string]any

	// Contents is the item body.
	Contents []byte
}

// Field returns the named value of the item. "path" and "category" resolve to
// the struct fields; dotted names walk nested maps in Fields.
func (it *Item) Field(name string) any {
	switch name {
	case "path":
		return it.Path
	case "category":
		return it.Category
	}
	if v, ok := it.Fields[name]; ok {
		return v
	}
	if !strings.Contains(name, ".") {
		return nil
	}
	var cur any = it.Fields
	for _, part := range strings.Split(name, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// Category is one node of the taxonomy: the items filed under a key, their
// pages, and the node's place in the tree.
type Category struct {
	ID          CategoryID
	Key         string
	Path        string
	Href        string
	DisplayName string

	// Config is the resolved page configuration.
	Config Config
	// Configured reports whether an explicit fragment exists for Key.
	Configured bool

	Items []*Item
	Pages []PageID

	Parent   CategoryID
	Children []CategoryID
	Root     CategoryID
}

// IsRoot reports whether c is the synthetic tree root.
func (c *Category) IsRoot() bool {
	return c.ID == RootID
}

// Depth returns the number of segments in the key. The root has depth zero.
func (c *Category) Depth() int {
	if c.IsRoot() {
		return 0
	}
	return strings.Count(c.Key, Delimiter) + 1
}

// Page is one generated page of one category.
type Page struct {
	ID PageID

	// Path is the page's canonical output path. For page one with a first
	// template this is the interpolated first path.
	Path string
	// NumberedPath is the interpolated path template, before any first override.
	NumberedPath string
	// Href is Path with a trailing /index.html removed.
	Href string

	Template string
	Layout   string
	Contents []byte
	Metadata map[string]any

	Pagination Pagination
	Root       CategoryID
}

// Pagination is the navigational descriptor of a page.
type Pagination struct {
	// Name is the group key that produced the page.
	Name string

	Category            CategoryID
	CategoryKey         string
	CategoryDisplayName string
	CategoryPath        string

	Index int
	Num   int

	// Pages is the owning category's page list.
	Pages []PageID
	Files []*Item

	First    PageID
	Last     PageID
	Previous PageID
	Next     PageID
}

// Output is one registration of a page under an output path.
type Output struct {
	Path string
	Page PageID
}
