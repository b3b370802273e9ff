package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itsmostafa/catpage/internal/category"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestKeyFromFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"news.json", "news"},
		{"news.world.json", "news.world"},
		{"default.yaml", "default"},
		{"a.b.c.jsonc", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, KeyFromFileName(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("jsonc with comments and trailing commas", func(t *testing.T) {
		file, err := Parse(".json", []byte(`{
			// five per page
			"perPage": 5,
			"reverse": true,
			"metadata": {"title": "News",},
		}`))
		require.NoError(t, err)
		require.NotNil(t, file.PerPage)
		require.Equal(t, 5, *file.PerPage)
		require.True(t, *file.Reverse)
		require.Equal(t, "News", file.Metadata["title"])
	})

	t.Run("yaml", func(t *testing.T) {
		file, err := Parse(".yml", []byte("sortBy: title\nnoPageOne: false\nlayout: \"\"\ntemplate: news.tmpl\n"))
		require.NoError(t, err)
		require.Equal(t, "title", *file.SortBy)
		require.False(t, *file.NoPageOne)
		require.Equal(t, "", *file.Layout)
		require.Equal(t, "news.tmpl", *file.Template)
	})

	t.Run("empty yaml", func(t *testing.T) {
		file, err := Parse(".yaml", nil)
		require.NoError(t, err)
		require.Nil(t, file.PerPage)
	})

	t.Run("unknown json field", func(t *testing.T) {
		_, err := Parse(".json", []byte(`{"perpage": 5}`))
		require.Error(t, err)
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		_, err := Parse(".yaml", []byte("perpage: 5\n"))
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Parse(".toml", []byte(""))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.json", `{"perPage": 20}`)
	writeFile(t, dir, "news.world.yaml", "sortBy: b.rank - a.rank\ngroupBy: year\nfilter: published\ndisplayName: World\npageContents: hello\n")
	writeFile(t, dir, "README.md", "ignored")
	writeFile(t, dir, ".hidden.json", "{")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	fragments, err := NewLoader(nil).Load(dir)
	require.NoError(t, err)
	require.Len(t, fragments, 2)

	require.Equal(t, 20, *fragments["default"].PerPage)

	world := fragments["news.world"]
	require.Equal(t, "World", *world.DisplayName)
	require.Equal(t, []byte("hello"), world.PageContents)
	require.NotNil(t, world.SortBy)
	require.Equal(t, "", world.SortBy.Field())
	require.NotNil(t, world.GroupBy)
	require.NotNil(t, world.Filter)

	keep, err := world.Filter(&category.Item{Fields: map[string]any{"published": true}})
	require.NoError(t, err)
	require.True(t, keep)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("duplicate key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "news.json", `{}`)
		writeFile(t, dir, "news.yaml", "perPage: 3\n")

		_, err := NewLoader(nil).Load(dir)
		require.ErrorIs(t, err, errDuplicateKey)
	})

	t.Run("bad expression names the file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "news.json", `{"groupBy": "year >"}`)

		_, err := NewLoader(nil).Load(dir)
		require.ErrorIs(t, err, category.ErrExpression)
		require.ErrorIs(t, err, errInvalidFile)
		require.Contains(t, err.Error(), "news.json")
	})
}

func TestLoad_FeedsBuild(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blog.jsonc", `{
		"perPage": 1,
		"noPageOne": false,
		"first": "",
		"sortBy": "title",
	}`)

	fragments, err := NewLoader(nil).Load(dir)
	require.NoError(t, err)

	items := map[string]*category.Item{
		"b.md": {Category: "blog", Fields: map[string]any{"title": "b"}},
		"a.md": {Category: "blog", Fields: map[string]any{"title": "a"}},
	}
	ix, err := category.Build(items, category.Options{Fragments: fragments})
	require.NoError(t, err)

	blog, ok := ix.Lookup("blog")
	require.True(t, ok)
	pages := ix.PagesOf(blog)
	require.Len(t, pages, 2)
	require.Equal(t, "blog/page/1/index.html", pages[0].Path)
	require.Equal(t, "a.md", pages[0].Pagination.Files[0].Path)
}
