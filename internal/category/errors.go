package category

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCollection is returned when a requested category has no items.
	ErrMissingCollection = errors.New("collection not found")
	// ErrConflictingRenderTarget is returned when neither or both of template
	// and layout are set.
	ErrConflictingRenderTarget = errors.New("exactly one of template or layout is required")
	// ErrMissingPath is returned when no path template resolves.
	ErrMissingPath = errors.New("the path is required")
	// ErrInvalidPaginationConfig is returned for unusable pagination settings,
	// such as noPageOne without a first template.
	ErrInvalidPaginationConfig = errors.New("invalid pagination config")
	// ErrInvalidCategoryKey is returned for keys with empty segments.
	ErrInvalidCategoryKey = errors.New("invalid category key")
	// ErrExpression is returned when a sort, group or filter function fails.
	ErrExpression = errors.New("expression failed")
)

// ConfigError ties a build failure to the category that caused it.
type ConfigError struct {
	Category string
	Detail   string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.Detail, e.Category)
	}
	return fmt.Sprintf("%s (%s)", e.Err, e.Category)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func categoryError(key string, err error, detail string) error {
	return &ConfigError{Category: key, Detail: detail, Err: err}
}
