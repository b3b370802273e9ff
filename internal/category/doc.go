// Package category files content items into a dot-delimited taxonomy and
// paginates every category into linked pages with deterministic output paths.
//
// # Overview
//
// A build takes a map of source path to Item and a set of option fragments
// keyed by category. Items carry a category key such as "news.world"; the
// item is filed under every prefix of that key ("news", "news.world") and
// under the "default" bucket. Each category is then sorted, split into pages
// and linked into a tree below a synthetic root.
//
// # Key Concepts
//
//   - Arena storage: categories and pages live in the Index tables and refer
//     to each other by CategoryID and PageID, so parent/child and
//     previous/next links never own each other.
//
//   - Config layering: Defaults() is overlaid by the "default" fragment and
//     then by the category's own fragment. Categories without a fragment are
//     indexed and sorted but not paginated; they are reported in
//     Index.Skipped.
//
//   - Grouping: pages are created the first time a group key is seen, so a
//     custom GroupFunc (group by year, say) keeps encounter order.
//
//   - Output registration: every page is registered under its output path in
//     Index.Outputs. Page one may be registered twice (numbered path and first
//     template) or only under the first template when NoPageOne is set. A
//     later registration at the same path wins.
//
// # Usage
//
//	ix, err := category.Build(items, category.Options{
//		Fragments: map[string]category.Fragment{
//			"news": {PerPage: category.Ptr(5)},
//		},
//	})
//	if err != nil {
//		return err
//	}
//	for _, out := range ix.Outputs {
//		page := ix.Page(out.Page)
//		render(out.Path, page)
//	}
//
// # Architecture
//
//   - types.go: Item, Category, Page, Pagination and the ID types
//   - config.go: Config, Fragment, SortSpec and layering
//   - indexer.go: filing items under key prefixes
//   - sort.go: value comparison and stable sort with reversal
//   - paginate.go: validation, grouping, page construction and linking
//   - window.go: getPages-style windows over a category's pages
//   - tree.go: parent/child assembly and category hrefs
//   - interpolate.go: :token path templates and permalink trimming
//   - build.go: Options and the Build entry point
package category
