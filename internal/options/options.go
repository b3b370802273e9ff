// Package options loads per-category option files into category fragments.
//
// A categories directory holds one file per category key, named after the
// key: news.world.json configures "news.world", default.yaml configures the
// layer applied beneath every category. JSON files may carry comments and
// trailing commas.
package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/itsmostafa/catpage/internal/category"
	"github.com/itsmostafa/catpage/internal/expr"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

var (
	errDuplicateKey = errors.New("duplicate option file for category")
	errInvalidFile  = errors.New("invalid option file")
)

// File is the on-disk shape of an option file.
type File struct {
	SortBy       *string        `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	Reverse      *bool          `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	GroupBy      *string        `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	Filter       *string        `json:"filter,omitempty" yaml:"filter,omitempty"`
	Template     *string        `json:"template,omitempty" yaml:"template,omitempty"`
	Layout       *string        `json:"layout,omitempty" yaml:"layout,omitempty"`
	Path         *string        `json:"path,omitempty" yaml:"path,omitempty"`
	First        *string        `json:"first,omitempty" yaml:"first,omitempty"`
	NoPageOne    *bool          `json:"noPageOne,omitempty" yaml:"noPageOne,omitempty"`
	PerPage      *int           `json:"perPage,omitempty" yaml:"perPage,omitempty"`
	PageContents *string        `json:"pageContents,omitempty" yaml:"pageContents,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	PageMetadata map[string]any `json:"pageMetadata,omitempty" yaml:"pageMetadata,omitempty"`
	DisplayName  *string        `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// Loader reads option files and compiles their expressions.
type Loader struct {
	compiler *expr.Compiler
}

// NewLoader creates a loader. A nil compiler uses expr defaults.
func NewLoader(compiler *expr.Compiler) *Loader {
	if compiler == nil {
		compiler = expr.NewCompiler(expr.DefaultTimeout)
	}
	return &Loader{compiler: compiler}
}

// Load reads every option file in dir. Subdirectories, hidden files and
// files with other extensions are ignored.
func (l *Loader) Load(dir string) (map[string]category.Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories directory: %w", err)
	}

	fragments := make(map[string]category.Fragment)
	sources := make(map[string]string)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !Supported(name) {
			continue
		}

		key := KeyFromFileName(name)
		if prev, ok := sources[key]; ok {
			return nil, fmt.Errorf("%w %q: %s and %s", errDuplicateKey, key, prev, name)
		}

		path := filepath.Join(dir, name)
		frag, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}

		fragments[key] = frag
		sources[key] = name
	}

	return fragments, nil
}

// LoadFile reads and converts a single option file.
func (l *Loader) LoadFile(path string) (category.Fragment, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured categories directory
	if err != nil {
		return category.Fragment{}, fmt.Errorf("failed to read option file: %w", err)
	}

	file, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return category.Fragment{}, fmt.Errorf("%w %s: %w", errInvalidFile, path, err)
	}

	frag, err := l.Fragment(file)
	if err != nil {
		return category.Fragment{}, fmt.Errorf("%w %s: %w", errInvalidFile, path, err)
	}
	return frag, nil
}

// Parse decodes option file contents by extension. Unknown fields are errors.
func Parse(ext string, data []byte) (File, error) {
	var file File

	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return File{}, fmt.Errorf("invalid JSONC: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(standardized))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return File{}, fmt.Errorf("invalid JSON: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unsupported extension %q", ext)
	}

	return file, nil
}

// Fragment converts a decoded file into a category fragment, compiling
// sortBy, groupBy and filter.
func (l *Loader) Fragment(file File) (category.Fragment, error) {
	frag := category.Fragment{
		Reverse:      file.Reverse,
		Template:     file.Template,
		Layout:       file.Layout,
		Path:         file.Path,
		First:        file.First,
		NoPageOne:    file.NoPageOne,
		PerPage:      file.PerPage,
		Metadata:     file.Metadata,
		PageMetadata: file.PageMetadata,
		DisplayName:  file.DisplayName,
	}

	if file.PageContents != nil {
		frag.PageContents = []byte(*file.PageContents)
	}

	if file.SortBy != nil {
		spec, err := l.compiler.SortSpec(*file.SortBy)
		if err != nil {
			return category.Fragment{}, err
		}
		frag.SortBy = &spec
	}

	if file.GroupBy != nil {
		fn, err := l.compiler.GroupFunc(*file.GroupBy)
		if err != nil {
			return category.Fragment{}, err
		}
		frag.GroupBy = fn
	}

	if file.Filter != nil {
		fn, err := l.compiler.FilterFunc(*file.Filter)
		if err != nil {
			return category.Fragment{}, err
		}
		frag.Filter = fn
	}

	return frag, nil
}

var supportedExts = []string{".json", ".jsonc", ".yaml", ".yml"}

// Supported reports whether name has an option file extension.
func Supported(name string) bool {
	return slices.Contains(supportedExts, strings.ToLower(filepath.Ext(name)))
}

// KeyFromFileName strips the last extension: "news.world.json" is "news.world".
func KeyFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
