package category

import (
	"slices"
)

// DefaultPath is the categoryPath of the default bucket.
const DefaultPath = "page"

// Options configures a build.
type Options struct {
	// Fragments maps category keys to their option fragments. The "default"
	// fragment applies beneath every category's own fragment.
	Fragments map[string]Fragment

	// Defaults is the base configuration. Nil uses Defaults().
	Defaults *Config

	// Policy selects which key prefixes get category records.
	Policy Policy

	// DefaultPath is the categoryPath of the default bucket. Empty uses DefaultPath.
	DefaultPath string

	// ExcludePrefixes lists source path prefixes removed from the output.
	// Nil uses DefaultExcludePrefixes; an empty non-nil slice removes nothing.
	ExcludePrefixes []string

	// Only restricts pagination to these keys. Each must name an indexed
	// category, otherwise the build fails with ErrMissingCollection.
	Only []string
}

type builder struct {
	opts     Options
	defaults Config
	ix       *Index
}

// Build runs the whole pass over items: index, sort, assemble the tree and
// paginate every configured category. Items get their Path assigned. On any
// error the returned Index is nil, so nothing is partially emitted.
func Build(items map[string]*Item, opts Options) (*Index, error) {
	b := newBuilder(opts)

	if err := b.index(items); err != nil {
		return nil, err
	}

	for _, c := range b.ix.Categories[1:] {
		if err := sortItems(c.Items, &c.Config); err != nil {
			return nil, categoryError(c.Key, err, "sortBy "+c.Config.SortBy.String())
		}
	}

	b.assemble()

	targets, err := b.targets()
	if err != nil {
		return nil, err
	}

	for _, c := range targets {
		if !c.Configured {
			b.ix.Skipped = append(b.ix.Skipped, c.Key)
			continue
		}
		if err := b.paginate(c); err != nil {
			return nil, err
		}
	}

	return b.ix, nil
}

func newBuilder(opts Options) *builder {
	defaults := Defaults()
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	if opts.DefaultPath == "" {
		opts.DefaultPath = DefaultPath
	}
	if opts.ExcludePrefixes == nil {
		opts.ExcludePrefixes = DefaultExcludePrefixes
	}
	return &builder{
		opts:     opts,
		defaults: defaults,
		ix:       newIndex(),
	}
}

// targets returns the categories to paginate, in creation order.
func (b *builder) targets() ([]*Category, error) {
	if len(b.opts.Only) == 0 {
		return b.ix.Categories[1:], nil
	}

	var out []*Category
	for _, key := range b.opts.Only {
		c, ok := b.ix.Lookup(key)
		if !ok || len(c.Items) == 0 {
			return nil, categoryError(key, ErrMissingCollection, "")
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Category) int { return int(a.ID - b.ID) })
	return slices.CompactFunc(out, func(a, b *Category) bool { return a.ID == b.ID }), nil
}
