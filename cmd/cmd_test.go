package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) []string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"content/a.md":          "---\ncategory: news.world\n---\n",
		"content/b.md":          "---\ncategory: news\n---\n",
		"content/c.md":          "---\ncategory: news\n---\n",
		"categories/news.jsonc": "{\n  // two per page\n  \"perPage\": 2,\n  \"displayName\": \"News\",\n}\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return []string{
		"--content", filepath.Join(root, "content"),
		"--categories", filepath.Join(root, "categories"),
		"--out", filepath.Join(root, "public"),
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	flags := fixture(t)

	out, err := execute(t, append([]string{"build"}, flags...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Build Complete")

	_, err = os.Stat(filepath.Join(flags[5], "manifest.json"))
	require.NoError(t, err)
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, append([]string{"tree"}, fixture(t)...)...)
	require.NoError(t, err)
	require.Contains(t, out, "news News")
	require.Contains(t, out, "news.world World")
}

func TestPagesCommand(t *testing.T) {
	flags := fixture(t)

	out, err := execute(t, append([]string{"pages", "news", "--window", "2"}, flags...)...)
	require.NoError(t, err)
	require.Contains(t, out, "1/2 news/index.html")
	require.Contains(t, out, "2/2 news/page/2/index.html")

	_, err = execute(t, append([]string{"pages", "sports", "--window", "0"}, flags...)...)
	require.ErrorContains(t, err, "unknown category")
}
