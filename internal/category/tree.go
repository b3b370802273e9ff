package category

import (
	"slices"
)

// assemble links every category under its nearest existing ancestor, or the
// root when it has none, and fills in hrefs. The default bucket aggregates
// everything and stays out of the tree.
func (b *builder) assemble() {
	ix := b.ix
	root := ix.Root()
	root.Children = root.Children[:0]

	for _, c := range ix.Categories[1:] {
		c.Root = RootID
		c.Href = categoryHref(c)
		c.Children = c.Children[:0]
		if c.Key == DefaultKey {
			c.Parent = NoCategory
			continue
		}

		parent := ix.nearestAncestor(c.Key)
		c.Parent = parent
		ix.Categories[parent].Children = append(ix.Categories[parent].Children, c.ID)
	}
}

// nearestAncestor walks the key's prefixes longest first and returns the
// first one that has a record.
func (ix *Index) nearestAncestor(key string) CategoryID {
	for parent := ParentKey(key); parent != ""; parent = ParentKey(parent) {
		if id, ok := ix.byKey[parent]; ok && parent != DefaultKey {
			return id
		}
	}
	return RootID
}

// categoryHref is the link to a category's landing page: its first page
// template, or page one of its path template.
func categoryHref(c *Category) string {
	tpl := c.Config.First
	if tpl == "" {
		tpl = c.Config.Path
	}
	return TrimPermalink(InterpolateMap(tpl, map[string]string{
		"name":                "1",
		"category":            c.Key,
		"categoryDisplayName": c.DisplayName,
		"categoryPath":        c.Path,
		"index":               "0",
		"num":                 "1",
	}))
}

// Ancestry returns the chain from the root down to c, inclusive.
func (ix *Index) Ancestry(c *Category) []*Category {
	var chain []*Category
	for cur := c; cur != nil; cur = ix.Category(cur.Parent) {
		chain = append(chain, cur)
	}
	slices.Reverse(chain)
	return chain
}
