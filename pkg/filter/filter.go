// Package filter selects nodes with boolean expressions.
//
// Expressions use the expr language (https://expr-lang.org). A Mapping
// element exposes its attributes as variables; every element is also
// available as value, and its node type as nodeType:
//
//	f, err := filter.Compile(`kind == "evse" && power >= 11000`)
//	fast := f.Where(devices)
//
// The lookup(obj, "a.b") function reads a nested attribute by path.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anore/anore-go/pkg/model"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter errors.
var (
	ErrEmptyExpression = errors.New("empty filter expression")
)

// Variables set for every element. Attributes of a Mapping element with the
// same name take precedence.
const (
	ValueVar = "value"
	TypeVar  = "nodeType"
)

// Filter is a compiled boolean expression. It is safe for concurrent use.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile compiles src. The expression must evaluate to a boolean.
func Compile(src string) (*Filter, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}

	return &Filter{source: src, program: program}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Filter {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Source returns the expression text.
func (f *Filter) Source() string {
	return f.source
}

// String returns the expression text.
func (f *Filter) String() string {
	return f.source
}

// Match reports whether the expression is true for n. Evaluation errors and
// non-boolean results count as no match.
func (f *Filter) Match(n model.Node) bool {
	if n == nil {
		return false
	}

	out, err := vm.Run(f.program, env(n))
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Where returns the elements of s for which the expression is true.
func (f *Filter) Where(s *model.Sequence) []model.Node {
	return s.Filter(func(e model.Node, _ int) bool {
		return f.Match(e)
	})
}

// First returns the first element of s for which the expression is true,
// or nil.
func (f *Filter) First(s *model.Sequence) model.Node {
	for _, e := range s.Elements() {
		if f.Match(e) {
			return e
		}
	}
	return nil
}

func env(n model.Node) map[string]any {
	value := n.Unbox()

	vars := map[string]any{
		ValueVar: value,
		TypeVar:  n.Type().String(),
	}
	if attrs, ok := value.(map[string]any); ok {
		for k, v := range attrs {
			vars[k] = v
		}
	}
	return vars
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
		expr.Function("lookup", func(params ...any) (any, error) {
			return lookup(params[0], params[1].(string)), nil
		},
			new(func(any, string) any)),
	}
}

// lookup walks a dotted path through nested maps and lists. List segments
// are decimal indexes.
func lookup(v any, path string) any {
	for _, key := range model.ParsePath(path) {
		switch c := v.(type) {
		case map[string]any:
			v = c[key]
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(c) {
				return nil
			}
			v = c[i]
		default:
			return nil
		}
	}
	return v
}
