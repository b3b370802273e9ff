package category

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CompareValues orders two field values. Falsy values (nil, zero numbers,
// empty strings, false, the zero time) sort before everything else and equal
// to each other. Numbers compare numerically, strings lexically, times
// chronologically and bools false before true. A number against a numeric
// string compares numerically. Other mixed kinds fall back to comparing their
// string forms.
func CompareValues(a, b any) int {
	az, bz := isFalsy(a), isFalsy(b)
	switch {
	case az && bz:
		return 0
	case az:
		return -1
	case bz:
		return 1
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := numeric(b); ok {
			return cmp.Compare(af, bf)
		}
	} else if bf, ok := toFloat(b); ok {
		if af, ok := numeric(a); ok {
			return cmp.Compare(af, bf)
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		// Both are true here; false is falsy.
		if _, ok := b.(bool); ok {
			return 0
		}
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// sortItems orders items in place per cfg: a stable sort, then an optional
// reversal of the whole sequence.
func sortItems(items []*Item, cfg *Config) error {
	spec := cfg.SortBy
	if spec.IsZero() {
		spec = ByField("date")
	}
	compare := spec.Comparator()

	var sortErr error
	slices.SortStableFunc(items, func(a, b *Item) int {
		if sortErr != nil {
			return 0
		}
		n, err := compare(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return n
	})
	if sortErr != nil {
		return sortErr
	}

	if cfg.Reverse {
		slices.Reverse(items)
	}
	return nil
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	}
	if f, ok := toFloat(v); ok {
		return f == 0 || f != f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// numeric is toFloat extended to strings holding a number.
func numeric(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return toFloat(v)
}

// Truthy reports whether v counts as present for sorting and filtering.
func Truthy(v any) bool {
	return !isFalsy(v)
}
