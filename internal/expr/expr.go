// Package expr compiles the string forms of sortBy, groupBy and filter found
// in category option files into category functions. A plain field path such
// as "date" or "author.name" selects a field; anything else is evaluated as a
// JavaScript expression in a sandboxed goja runtime.
package expr

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/dop251/goja"
	"github.com/itsmostafa/catpage/internal/category"
)

// DefaultTimeout bounds a single expression evaluation.
const DefaultTimeout = time.Second

var fieldPathPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)

// IsFieldPath reports whether src names a field rather than an expression.
func IsFieldPath(src string) bool {
	return fieldPathPattern.MatchString(src)
}

// Compiler turns option strings into category functions.
type Compiler struct {
	// Timeout bounds each evaluation. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// NewCompiler creates a compiler with the given per-evaluation timeout.
func NewCompiler(timeout time.Duration) *Compiler {
	return &Compiler{Timeout: timeout}
}

// SortSpec compiles a sortBy option. Field paths sort by that field;
// expressions are comparators over a and b that return a number.
func (c *Compiler) SortSpec(src string) (category.SortSpec, error) {
	if IsFieldPath(src) {
		return category.ByField(src), nil
	}

	prog, err := compile("sortBy", src)
	if err != nil {
		return category.SortSpec{}, err
	}

	return category.ByComparator(func(a, b *category.Item) (int, error) {
		val, err := c.run(prog, src, func(vm *goja.Runtime) error {
			if err := vm.Set("a", itemObject(vm, a)); err != nil {
				return err
			}
			return vm.Set("b", itemObject(vm, b))
		})
		if err != nil {
			return 0, err
		}
		n := val.ToFloat()
		switch {
		case math.IsNaN(n):
			return 0, fmt.Errorf("%w: %q: comparator returned %s, not a number", category.ErrExpression, src, val)
		case n == 0:
			return 0, nil
		case n < 0:
			return -1, nil
		default:
			return 1, nil
		}
	}), nil
}

// GroupFunc compiles a groupBy option. The result is converted to a string
// group key. Expressions see item, index, perPage and the item's fields.
func (c *Compiler) GroupFunc(src string) (category.GroupFunc, error) {
	if IsFieldPath(src) {
		return func(item *category.Item, _ int, _ *category.Config) (string, error) {
			v := item.Field(src)
			if v == nil {
				return "", nil
			}
			return fmt.Sprint(v), nil
		}, nil
	}

	prog, err := compile("groupBy", src)
	if err != nil {
		return nil, err
	}

	return func(item *category.Item, index int, cfg *category.Config) (string, error) {
		val, err := c.run(prog, src, func(vm *goja.Runtime) error {
			if err := setFields(vm, item); err != nil {
				return err
			}
			if err := vm.Set("index", index); err != nil {
				return err
			}
			return vm.Set("perPage", cfg.PerPage)
		})
		if err != nil {
			return "", err
		}
		return val.String(), nil
	}, nil
}

// FilterFunc compiles a filter option. Field paths keep items whose field is
// truthy; expressions keep items for which they evaluate truthy.
func (c *Compiler) FilterFunc(src string) (category.FilterFunc, error) {
	if IsFieldPath(src) {
		return func(item *category.Item) (bool, error) {
			return category.Truthy(item.Field(src)), nil
		}, nil
	}

	prog, err := compile("filter", src)
	if err != nil {
		return nil, err
	}

	return func(item *category.Item) (bool, error) {
		val, err := c.run(prog, src, func(vm *goja.Runtime) error {
			return setFields(vm, item)
		})
		if err != nil {
			return false, err
		}
		return val.ToBoolean(), nil
	}, nil
}

func compile(name, src string) (*goja.Program, error) {
	prog, err := goja.Compile(name, src, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", category.ErrExpression, name, src, err)
	}
	return prog, nil
}

// run evaluates prog in a fresh runtime so values from one item never leak
// into the next. Evaluation is interrupted once the timeout elapses.
func (c *Compiler) run(prog *goja.Program, src string, setup func(vm *goja.Runtime) error) (goja.Value, error) {
	vm := goja.New()

	if err := setup(vm); err != nil {
		return nil, fmt.Errorf("%w: %q: failed to setup environment: %w", category.ErrExpression, src, err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt("execution timeout")
	})
	defer timer.Stop()

	val, err := vm.RunProgram(prog)
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			return nil, fmt.Errorf("%w: %q: execution interrupted: %v", category.ErrExpression, src, interrupted.Value())
		}
		return nil, fmt.Errorf("%w: %q: %w", category.ErrExpression, src, err)
	}
	return val, nil
}

// setFields exposes the item's fields as globals plus the item itself.
func setFields(vm *goja.Runtime, item *category.Item) error {
	for name, v := range item.Fields {
		if !IsFieldPath(name) {
			continue
		}
		if err := vm.Set(name, toJS(vm, v)); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return vm.Set("item", itemObject(vm, item))
}

func itemObject(vm *goja.Runtime, item *category.Item) *goja.Object {
	obj := vm.NewObject()
	for k, v := range item.Fields {
		_ = obj.Set(k, toJS(vm, v))
	}
	_ = obj.Set("path", item.Path)
	_ = obj.Set("category", item.Category)
	return obj
}

// toJS converts field values so that times become Date objects, also inside
// nested maps and slices. Everything else is left to goja's own conversion.
func toJS(vm *goja.Runtime, v any) goja.Value {
	switch x := v.(type) {
	case time.Time:
		date, err := vm.New(vm.Get("Date"), vm.ToValue(x.UnixMilli()))
		if err != nil {
			return vm.ToValue(x)
		}
		return date
	case map[string]any:
		obj := vm.NewObject()
		for k, e := range x {
			_ = obj.Set(k, toJS(vm, e))
		}
		return obj
	case []any:
		values := make([]any, len(x))
		for i, e := range x {
			values[i] = toJS(vm, e)
		}
		return vm.NewArray(values...)
	}
	return vm.ToValue(v)
}
