package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsmostafa/catpage/internal/category"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	require.Empty(t, used)

	require.Equal(t, "content", cfg.ContentDir)
	require.Equal(t, "categories", cfg.CategoriesDir)
	require.Equal(t, "public", cfg.OutputDir)
	require.Equal(t, "unrestricted", cfg.Policy)
	require.Equal(t, category.DefaultPath, cfg.DefaultPath)
	require.Equal(t, category.DefaultExcludePrefixes, cfg.ExcludePrefixes)
	require.Equal(t, time.Second, cfg.ExprTimeout)
	require.Equal(t, filepath.Join("public", "manifest.json"), cfg.ManifestPath())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catpage.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
contentDir: site/content
outputDir: site/public
policy: configured-only
exprTimeout: 250ms
`), 0o644))

	t.Run("file", func(t *testing.T) {
		cfg, used, err := Load(file, nil)
		require.NoError(t, err)
		require.Equal(t, file, used)
		require.Equal(t, "site/content", cfg.ContentDir)
		require.Equal(t, "configured-only", cfg.Policy)
		require.Equal(t, 250*time.Millisecond, cfg.ExprTimeout)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("CATPAGE_OUTPUTDIR", "dist")
		cfg, _, err := Load(file, nil)
		require.NoError(t, err)
		require.Equal(t, "dist", cfg.OutputDir)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("CATPAGE_OUTPUTDIR", "dist")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("out", "public", "")
		flags.String("content", "content", "")
		flags.StringSlice("only", nil, "")
		require.NoError(t, flags.Parse([]string{"--out", "build", "--only", "news,sports"}))

		cfg, _, err := Load(file, flags)
		require.NoError(t, err)
		require.Equal(t, "build", cfg.OutputDir)
		require.Equal(t, "site/content", cfg.ContentDir, "unset flags must not shadow the file")
		require.Equal(t, []string{"news", "sports"}, cfg.Only)

		opts := cfg.BuildOptions(nil)
		require.Equal(t, category.PolicyConfiguredOnly, opts.Policy)
		require.Equal(t, []string{"news", "sports"}, opts.Only)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("named file missing", func(t *testing.T) {
		_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("bad policy", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "catpage.yaml")
		require.NoError(t, os.WriteFile(file, []byte("policy: strict\n"), 0o644))

		_, _, err := Load(file, nil)
		require.ErrorContains(t, err, "unknown policy")
	})
}
