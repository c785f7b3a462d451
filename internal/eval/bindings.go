package eval

import (
	"fmt"
	"strings"

	"github.com/udoprog/genco/internal/quasi"
)

// Bindings is the host-supplied value environment for a render. The
// quasiquote grammar captures expressions as opaque host text (spec.md
// Design Note "Opaque host expressions"); the evaluator never interprets
// that text itself, it only resolves bare names locally and hands
// anything richer back to the host.
type Bindings interface {
	// Resolve looks up a bare "$name" reference.
	Resolve(name string) (any, bool)
	// Eval evaluates a captured expression: a "$(expr)" interpolation, a
	// $if condition, a $match scrutinee or pattern, a $let value, or a
	// $for iterable. Expr.Raw() gives the captured source text.
	Eval(expr quasi.Expr) (any, error)
}

// Map is the common case: a flat table of names to values. Its Eval only
// understands a bare identifier — anything with richer syntax needs a
// host that implements Bindings with a real expression evaluator.
type Map map[string]any

func (m Map) Resolve(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m Map) Eval(expr quasi.Expr) (any, error) {
	name := strings.TrimSpace(expr.Raw())
	if v, ok := m[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("eval: unresolved expression %q", name)
}

// scope overlays one additional binding atop a parent Bindings, for a
// $let name or a $for loop variable. Only a bare reference to that exact
// name is special-cased; a compound expression is delegated to the
// parent, which is where a host with a real expression language (able to
// see the overlay through some other mechanism, e.g. closures captured
// before the render began) hooks in.
type scope struct {
	parent Bindings
	name   string
	value  any
}

func withBinding(parent Bindings, name string, value any) Bindings {
	return &scope{parent: parent, name: name, value: value}
}

func (s *scope) Resolve(name string) (any, bool) {
	if name == s.name {
		return s.value, true
	}
	return s.parent.Resolve(name)
}

func (s *scope) Eval(expr quasi.Expr) (any, error) {
	if raw := strings.TrimSpace(expr.Raw()); raw == s.name {
		return s.value, nil
	}
	return s.parent.Eval(expr)
}
