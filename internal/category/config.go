package category

import (
	"maps"
	"strconv"
)

// Comparator orders two items: negative when a sorts before b, zero when
// equal, positive otherwise.
type Comparator func(a, b *Item) (int, error)

// GroupFunc maps an item and its position in the filtered list to a page group key.
type GroupFunc func(item *Item, index int, cfg *Config) (string, error)

// FilterFunc reports whether an item is paginated.
type FilterFunc func(item *Item) (bool, error)

// SortSpec selects how a category's items are ordered: by a named field or by
// a full comparator. The zero value is unset.
type SortSpec struct {
	field   string
	compare Comparator
}

// ByField sorts by the named item field.
func ByField(name string) SortSpec {
	return SortSpec{field: name}
}

// ByComparator sorts with fn.
func ByComparator(fn Comparator) SortSpec {
	return SortSpec{compare: fn}
}

// IsZero reports whether no sort has been chosen.
func (s SortSpec) IsZero() bool {
	return s.field == "" && s.compare == nil
}

// Field returns the sort field, or "" for comparator specs.
func (s SortSpec) Field() string {
	return s.field
}

// Comparator returns the comparator used to sort. Field specs are turned into
// a comparator over Item.Field.
func (s SortSpec) Comparator() Comparator {
	if s.compare != nil {
		return s.compare
	}
	field := s.field
	return func(a, b *Item) (int, error) {
		return CompareValues(a.Field(field), b.Field(field)), nil
	}
}

// String describes the spec for diagnostics.
func (s SortSpec) String() string {
	switch {
	case s.compare != nil:
		return "comparator"
	case s.field != "":
		return "field " + strconv.Quote(s.field)
	default:
		return "unset"
	}
}

// Config is a fully resolved page configuration for one category.
type Config struct {
	SortBy  SortSpec
	Reverse bool
	GroupBy GroupFunc
	Filter  FilterFunc

	Template string
	Layout   string

	Path      string
	First     string
	NoPageOne bool
	PerPage   int

	PageContents []byte
	Metadata     map[string]any
	PageMetadata map[string]any
	DisplayName  string
}

// Fragment is a partial page configuration, as written in an option file.
// Nil fields leave the underlying value alone.
type Fragment struct {
	SortBy  *SortSpec
	Reverse *bool
	GroupBy GroupFunc
	Filter  FilterFunc

	Template *string
	Layout   *string

	Path      *string
	First     *string
	NoPageOne *bool
	PerPage   *int

	PageContents []byte
	Metadata     map[string]any
	PageMetadata map[string]any
	DisplayName  *string
}

// Defaults returns the built-in page configuration.
func Defaults() Config {
	return Config{
		SortBy:       ByField("date"),
		PerPage:      10,
		NoPageOne:    true,
		Layout:       "default.category.html",
		First:        ":categoryPath/index.html",
		Path:         ":categoryPath/page/:num/index.html",
		PageContents: []byte{},
		Metadata:     map[string]any{},
		DisplayName:  "Default",
	}
}

// Apply returns a copy of c with every field set in f overriding it.
func (c Config) Apply(f Fragment) Config {
	out := c
	if f.SortBy != nil {
		out.SortBy = *f.SortBy
	}
	if f.Reverse != nil {
		out.Reverse = *f.Reverse
	}
	if f.GroupBy != nil {
		out.GroupBy = f.GroupBy
	}
	if f.Filter != nil {
		out.Filter = f.Filter
	}
	if f.Template != nil {
		out.Template = *f.Template
	}
	if f.Layout != nil {
		out.Layout = *f.Layout
	}
	if f.Path != nil {
		out.Path = *f.Path
	}
	if f.First != nil {
		out.First = *f.First
	}
	if f.NoPageOne != nil {
		out.NoPageOne = *f.NoPageOne
	}
	if f.PerPage != nil {
		out.PerPage = *f.PerPage
	}
	if f.PageContents != nil {
		out.PageContents = f.PageContents
	}
	if f.Metadata != nil {
		out.Metadata = f.Metadata
	}
	if f.PageMetadata != nil {
		out.PageMetadata = f.PageMetadata
	}
	if f.DisplayName != nil {
		out.DisplayName = *f.DisplayName
	}
	return out
}

// Resolve layers the defaults, the "default" fragment and the key's own
// fragment, in that order. The boolean reports whether key has a fragment.
func Resolve(defaults Config, fragments map[string]Fragment, key string) (Config, bool) {
	cfg := defaults
	if f, ok := fragments[DefaultKey]; ok {
		cfg = cfg.Apply(f)
	}
	f, ok := fragments[key]
	if ok && key != DefaultKey {
		cfg = cfg.Apply(f)
	}
	return cfg, ok
}

// pageMetadata merges PageMetadata and Metadata into a fresh map, Metadata
// winning on conflicts.
func (c *Config) pageMetadata() map[string]any {
	out := make(map[string]any, len(c.PageMetadata)+len(c.Metadata))
	maps.Copy(out, c.PageMetadata)
	maps.Copy(out, c.Metadata)
	return out
}

// Ptr returns a pointer to v. Handy for building fragments in code.
func Ptr[T any](v T) *T {
	return &v
}
