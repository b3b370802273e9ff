package category

import (
	"fmt"
	"slices"
	"strings"
)

// Policy controls which ancestor prefixes of an item's key get a record.
type Policy int

const (
	// PolicyUnrestricted creates a record for every prefix of every key.
	PolicyUnrestricted Policy = iota
	// PolicyConfiguredOnly creates records only for prefixes that have a
	// fragment. Unconfigured prefixes are skipped, not reported.
	PolicyConfiguredOnly
)

// ParsePolicy parses "unrestricted" or "configured-only".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "unrestricted":
		return PolicyUnrestricted, nil
	case "configured-only", "configured":
		return PolicyConfiguredOnly, nil
	default:
		return 0, fmt.Errorf("unknown policy: %q (valid options: unrestricted, configured-only)", s)
	}
}

func (p Policy) String() string {
	if p == PolicyConfiguredOnly {
		return "configured-only"
	}
	return "unrestricted"
}

// DefaultExcludePrefixes are source path prefixes that hold build inputs
// rather than content.
var DefaultExcludePrefixes = []string{"category/", "metadata/"}

// SplitKey splits a category key into its segments, rejecting empty ones.
func SplitKey(key string) ([]string, error) {
	segments := strings.Split(key, Delimiter)
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidCategoryKey, key)
		}
	}
	return segments, nil
}

// ParentKey returns the key one level up, or "" for a top-level key.
func ParentKey(key string) string {
	i := strings.LastIndex(key, Delimiter)
	if i < 0 {
		return ""
	}
	return key[:i]
}

// Ancestors returns every prefix of key, shortest first, including key itself.
func Ancestors(key string) []string {
	segments := strings.Split(key, Delimiter)
	out := make([]string, len(segments))
	for i := range segments {
		out[i] = strings.Join(segments[:i+1], Delimiter)
	}
	return out
}

// NormalizePath converts a source path to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// index files every categorized item under the default bucket and each of
// its key's prefixes. Source paths are visited in sorted order.
func (b *builder) index(items map[string]*Item) error {
	paths := make([]string, 0, len(items))
	for p := range items {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	b.ensure(DefaultKey)

	for _, src := range paths {
		item := items[src]
		norm := NormalizePath(src)

		if b.excluded(norm) {
			b.ix.Removed = append(b.ix.Removed, src)
			continue
		}
		if item == nil {
			continue
		}
		item.Path = norm
		if item.Category == "" {
			continue
		}

		if _, err := SplitKey(item.Category); err != nil {
			return categoryError(item.Category, err, "in "+norm)
		}

		b.add(DefaultKey, item)
		for _, key := range Ancestors(item.Category) {
			if key == DefaultKey {
				continue
			}
			if b.opts.Policy == PolicyConfiguredOnly {
				if _, ok := b.opts.Fragments[key]; !ok {
					continue
				}
			}
			b.add(key, item)
		}
	}

	return nil
}

func (b *builder) excluded(path string) bool {
	for _, prefix := range b.opts.ExcludePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (b *builder) add(key string, item *Item) {
	c := b.ensure(key)
	c.Items = append(c.Items, item)
}

// ensure returns the record for key, creating it on first reference.
func (b *builder) ensure(key string) *Category {
	if id, ok := b.ix.byKey[key]; ok {
		return b.ix.Categories[id]
	}

	cfg, configured := Resolve(b.defaults, b.opts.Fragments, key)
	c := &Category{
		ID:          CategoryID(len(b.ix.Categories)),
		Key:         key,
		Config:      cfg,
		Configured:  configured,
		DisplayName: cfg.DisplayName,
		Parent:      NoCategory,
		Root:        RootID,
	}
	if key == DefaultKey {
		c.Path = b.opts.DefaultPath
	} else {
		c.Path = strings.ReplaceAll(key, Delimiter, "/")
	}

	b.ix.Categories = append(b.ix.Categories, c)
	b.ix.byKey[key] = c.ID
	return c
}
