// Package runner drives a build: it loads content and option files, runs the
// category engine and writes the merged manifest.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/itsmostafa/catpage/internal/category"
	"github.com/itsmostafa/catpage/internal/config"
	"github.com/itsmostafa/catpage/internal/content"
	"github.com/itsmostafa/catpage/internal/expr"
	"github.com/itsmostafa/catpage/internal/options"
	"github.com/itsmostafa/catpage/internal/render"
	"github.com/itsmostafa/catpage/internal/site"
)

// DefaultDebounce is how long Watch waits after the last change before
// rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Config holds the runner configuration
type Config struct {
	Project config.Config
	Output  io.Writer

	// DryRun skips writing the manifest.
	DryRun bool

	// Debounce overrides DefaultDebounce in Watch.
	Debounce time.Duration
}

// Result is the outcome of one build.
type Result struct {
	Items        map[string]*category.Item
	Index        *category.Index
	Manifest     site.Manifest
	ManifestPath string
	Duration     time.Duration
}

// Summary condenses r for display.
func (r *Result) Summary() render.Summary {
	return render.Summary{
		Items:      len(r.Items),
		Categories: len(r.Index.Categories) - 1,
		Pages:      len(r.Index.Pages),
		Outputs:    len(r.Index.Paths()),
		Removed:    len(r.Index.Removed),
		Skipped:    r.Index.Skipped,
		Manifest:   r.ManifestPath,
		Duration:   r.Duration,
	}
}

// Build runs one pass without printing anything.
func Build(cfg Config) (*Result, error) {
	start := time.Now()
	project := cfg.Project

	items, err := content.Load(project.ContentDir, project.Extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	fragments, err := LoadFragments(project)
	if err != nil {
		return nil, err
	}

	ix, err := category.Build(items, project.BuildOptions(fragments))
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	result := &Result{
		Items:    items,
		Index:    ix,
		Manifest: site.Merge(items, ix),
	}

	if !cfg.DryRun {
		result.ManifestPath = project.ManifestPath()
		if err := site.Write(result.ManifestPath, result.Manifest); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// LoadFragments reads the option files of a project. A missing categories
// directory means no category is configured.
func LoadFragments(project config.Config) (map[string]category.Fragment, error) {
	loader := options.NewLoader(expr.NewCompiler(project.ExprTimeout))
	fragments, err := loader.Load(project.CategoriesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]category.Fragment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category options: %w", err)
	}
	return fragments, nil
}

// Run executes a single build and prints the header and summary.
func Run(cfg Config) (*Result, error) {
	// Default output to stdout
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	render.FormatHeader(cfg.Output, header(cfg))

	result, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	render.FormatSummary(cfg.Output, result.Summary())
	return result, nil
}

// Watch builds once, then rebuilds whenever the content or categories
// directories change, until ctx is done. Build errors are printed and the
// watch continues.
func Watch(ctx context.Context, cfg Config) error {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range []string{cfg.Project.ContentDir, cfg.Project.CategoriesDir} {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}

	render.FormatHeader(cfg.Output, header(cfg))
	rebuild(cfg)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	outDir, _ := filepath.Abs(cfg.Project.OutputDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if within(outDir, event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addTree(watcher, event.Name); err != nil {
					render.FormatError(cfg.Output, err)
				}
			}

			changed = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			render.FormatRebuild(cfg.Output, changed)
			rebuild(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			render.FormatError(cfg.Output, fmt.Errorf("watcher error: %w", err))
		}
	}
}

func rebuild(cfg Config) {
	result, err := Build(cfg)
	if err != nil {
		render.FormatError(cfg.Output, err)
		return
	}
	render.FormatSummary(cfg.Output, result.Summary())
}

func header(cfg Config) render.Header {
	policy, _ := category.ParsePolicy(cfg.Project.Policy)
	return render.Header{
		Content:    cfg.Project.ContentDir,
		Categories: cfg.Project.CategoriesDir,
		Output:     cfg.Project.ManifestPath(),
		Policy:     policy,
	}
}

// addTree watches dir and every directory below it. A missing dir is ignored.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func within(dir, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
