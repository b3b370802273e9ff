package category

import (
	"fmt"
	"strconv"
)

// Validate checks that cfg can paginate the named category.
func Validate(key string, cfg *Config) error {
	switch {
	case cfg.Template == "" && cfg.Layout == "":
		return categoryError(key, ErrConflictingRenderTarget, "neither is set")
	case cfg.Template != "" && cfg.Layout != "":
		return categoryError(key, ErrConflictingRenderTarget, "template and layout can not be used simultaneously")
	case cfg.Path == "":
		return categoryError(key, ErrMissingPath, "")
	case cfg.NoPageOne && cfg.First == "":
		return categoryError(key, ErrInvalidPaginationConfig, "noPageOne requires a first page template")
	case cfg.GroupBy == nil && cfg.PerPage <= 0:
		return categoryError(key, ErrInvalidPaginationConfig, fmt.Sprintf("perPage must be positive, got %d", cfg.PerPage))
	}
	return nil
}

// GroupByPage is the default grouping: fixed chunks of cfg.PerPage items,
// keyed "1", "2", ...
func GroupByPage(_ *Item, index int, cfg *Config) (string, error) {
	return strconv.Itoa(index/cfg.PerPage + 1), nil
}

// paginate splits a category's items into pages and registers their outputs.
// Group keys keep the order in which they are first seen.
func (b *builder) paginate(c *Category) error {
	cfg := &c.Config
	if err := Validate(c.Key, cfg); err != nil {
		return err
	}

	items, err := filterItems(c.Items, cfg.Filter)
	if err != nil {
		return categoryError(c.Key, err, "filter")
	}

	groupBy := cfg.GroupBy
	if groupBy == nil {
		groupBy = GroupByPage
	}

	pageByName := make(map[string]*Page)

	for i, item := range items {
		name, err := groupBy(item, i, cfg)
		if err != nil {
			return categoryError(c.Key, fmt.Errorf("%w: %w", ErrExpression, err), "groupBy")
		}

		page, ok := pageByName[name]
		if !ok {
			page = b.newPage(c, name)
			pageByName[name] = page
		}
		page.Pagination.Files = append(page.Pagination.Files, item)
	}

	b.finish(c)
	return nil
}

// newPage appends the next page of c, registers its output paths and links it
// to its predecessor.
func (b *builder) newPage(c *Category, name string) *Page {
	cfg := &c.Config
	id := PageID(len(b.ix.Pages))
	index := len(c.Pages)

	pagination := Pagination{
		Name:                name,
		Category:            c.ID,
		CategoryKey:         c.Key,
		CategoryDisplayName: cfg.DisplayName,
		CategoryPath:        c.Path,
		Index:               index,
		Num:                 index + 1,
		First:               NoPage,
		Last:                NoPage,
		Previous:            NoPage,
		Next:                NoPage,
	}

	path := Interpolate(cfg.Path, pagination.Lookup)
	page := &Page{
		ID:           id,
		Path:         path,
		NumberedPath: path,
		Template:     cfg.Template,
		Layout:       cfg.Layout,
		Contents:     cfg.PageContents,
		Metadata:     cfg.pageMetadata(),
		Pagination:   pagination,
		Root:         RootID,
	}

	b.ix.Pages = append(b.ix.Pages, page)

	if index == 0 {
		if !cfg.NoPageOne {
			b.ix.register(page.Path, id)
		}
		if cfg.First != "" {
			page.Path = Interpolate(cfg.First, page.Pagination.Lookup)
			b.ix.register(page.Path, id)
		}
	} else {
		b.ix.register(page.Path, id)

		prev := b.ix.Pages[c.Pages[index-1]]
		page.Pagination.Previous = prev.ID
		prev.Pagination.Next = id
	}
	page.Href = TrimPermalink(page.Path)

	c.Pages = append(c.Pages, id)
	return page
}

// finish points every page of c at the first and last page. It runs once the
// page list is complete.
func (b *builder) finish(c *Category) {
	if len(c.Pages) == 0 {
		return
	}
	first, last := c.Pages[0], c.Pages[len(c.Pages)-1]
	for _, id := range c.Pages {
		p := &b.ix.Pages[id].Pagination
		p.First = first
		p.Last = last
		p.Pages = c.Pages
	}
}

func filterItems(items []*Item, filter FilterFunc) ([]*Item, error) {
	if filter == nil {
		return items, nil
	}
	out := make([]*Item, 0, len(items))
	for _, item := range items {
		keep, err := filter(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExpression, err)
		}
		if keep {
			out = append(out, item)
		}
	}
	return out, nil
}

// Lookup resolves interpolation tokens against the descriptor's fields.
func (p *Pagination) Lookup(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "category":
		return p.CategoryKey, true
	case "categoryDisplayName":
		return p.CategoryDisplayName, true
	case "categoryPath":
		return p.CategoryPath, true
	case "index":
		return strconv.Itoa(p.Index), true
	case "num":
		return strconv.Itoa(p.Num), true
	}
	return "", false
}
