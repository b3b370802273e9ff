package category

// Window returns up to n consecutive pages of the category that owns page,
// centered on it where possible and clamped to the ends of the page list.
// The window is computed from the current page list on every call.
func (ix *Index) Window(page PageID, n int) []PageID {
	p := ix.Page(page)
	if p == nil || n <= 0 {
		return nil
	}
	pages := ix.Categories[p.Pagination.Category].Pages
	start, end := windowBounds(p.Pagination.Index, len(pages), n)
	return pages[start:end:end]
}

// WindowPages is Window resolved to page records.
func (ix *Index) WindowPages(page PageID, n int) []*Page {
	ids := ix.Window(page, n)
	out := make([]*Page, len(ids))
	for i, id := range ids {
		out[i] = ix.Pages[id]
	}
	return out
}

func windowBounds(index, total, n int) (start, end int) {
	offset := n / 2
	if index+offset >= total {
		return max(0, total-n), total
	}
	start = max(0, index-offset)
	return start, min(start+n, total)
}
