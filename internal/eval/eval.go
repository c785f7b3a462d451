// Package eval implements the evaluator (spec.md component E): it walks
// the template AST internal/quasi builds, driving the whitespace
// inferencer and a language adapter to produce an intermediate token
// stream and the import set that goes with it.
//
// Grounded on the teacher's internal/ir/transformer.go: the same
// recursive-dispatch-by-node-type shape, adapted from a one-shot AST →
// IR desugaring into a driver that calls back into an arbitrary
// lang.Language adapter and a host Bindings environment instead of
// producing a fixed Go-shaped IR.
package eval

import (
	"fmt"
	"reflect"

	"github.com/udoprog/genco/internal/atom"
	"github.com/udoprog/genco/internal/its"
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/quasi"
	"github.com/udoprog/genco/internal/whitespace"
)

// Eval walks tmpl and produces the intermediate token stream and import
// set for adapter to format. degraded selects the flat whitespace
// fallback (spec.md Design Notes / SPEC_FULL.md §13's --flat flag).
func Eval(tmpl *quasi.Template, adapter lang.Language, bindings Bindings, degraded bool) (*its.Stream, *lang.ImportSet, error) {
	var infer *whitespace.Inferencer
	if degraded {
		infer = whitespace.NewDegraded()
	} else {
		infer = whitespace.New()
	}
	e := &evaluator{
		stream:  its.NewStream(),
		imports: lang.NewImportSet(),
		adapter: adapter,
		infer:   infer,
	}
	if err := e.walkBody(tmpl.Body, bindings); err != nil {
		return nil, nil, err
	}
	return e.stream, e.imports, nil
}

type evaluator struct {
	stream  *its.Stream
	imports *lang.ImportSet
	adapter lang.Language
	infer   *whitespace.Inferencer
}

func (e *evaluator) walkBody(body quasi.Body, bindings Bindings) error {
	for _, node := range body {
		if let, ok := node.(quasi.Let); ok {
			v, err := bindings.Eval(let.Value)
			if err != nil {
				return fmt.Errorf("eval: $let %s: %w", let.Binding, err)
			}
			bindings = withBinding(bindings, let.Binding, v)
			continue
		}
		if err := e.walkNode(node, bindings); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) walkNode(node quasi.Node, bindings Bindings) error {
	switch n := node.(type) {
	case quasi.Literal:
		for _, a := range n.Atoms {
			e.emitLiteralAtom(a)
		}
		return nil

	case quasi.Escape:
		e.infer.EmitSpan(n.Span(), e.stream)
		e.stream.AppendText("$")
		return nil

	case quasi.Interp:
		if atoms := n.ExprVal.Atoms; len(atoms) == 1 && atoms[0].Kind == atom.Ident {
			v, ok := bindings.Resolve(atoms[0].Text)
			if !ok {
				return fmt.Errorf("eval: unresolved name %q", atoms[0].Text)
			}
			return e.emitValue(n.Span(), v, true)
		}
		v, err := bindings.Eval(n.ExprVal)
		if err != nil {
			return fmt.Errorf("eval: %s: %w", n.ExprVal.Raw(), err)
		}
		return e.emitValue(n.Span(), v, true)

	case quasi.Ref:
		v, err := bindings.Eval(n.ExprVal)
		if err != nil {
			return fmt.Errorf("eval: $ref %s: %w", n.ExprVal.Raw(), err)
		}
		return e.emitValue(n.Span(), v, false)

	case quasi.Register:
		v, err := bindings.Eval(n.ExprVal)
		if err != nil {
			return fmt.Errorf("eval: register %s: %w", n.ExprVal.Raw(), err)
		}
		lv, ok := v.(lang.Value)
		if !ok {
			return fmt.Errorf("eval: register %s: not a language value", n.ExprVal.Raw())
		}
		e.infer.EmitSpan(n.Span(), e.stream)
		e.adapter.RegisterItem(lv, e.imports)
		return nil

	case quasi.QuotedString:
		return e.emitQuotedString(n, bindings)

	case quasi.Repeat:
		return e.evalRepeat(n, bindings)

	case quasi.If:
		return e.evalIf(n, bindings)

	case quasi.Match:
		return e.evalMatch(n, bindings)

	default:
		return fmt.Errorf("eval: unhandled node %T", node)
	}
}

var openChar = map[atom.Delimiter]string{atom.Paren: "(", atom.Brace: "{", atom.Bracket: "["}
var closeChar = map[atom.Delimiter]string{atom.Paren: ")", atom.Brace: "}", atom.Bracket: "]"}

// emitLiteralAtom emits one atom of an opaque literal run. A Group atom
// carries no text of its own (its source text is the bracket pair plus
// whatever Children hold), so it is recursed into atom by atom instead of
// being handed to the inferencer as a single unit — the bracket
// characters themselves are synthesized from the group's span, since
// nothing else in the atom model records their position individually.
func (e *evaluator) emitLiteralAtom(a atom.Atom) {
	if a.Kind != atom.Group {
		e.infer.EmitAtom(a, e.stream)
		return
	}
	open := atom.Span{
		Start: a.Span.Start,
		End:   atom.Position{Line: a.Span.Start.Line, Column: a.Span.Start.Column + 1},
	}
	e.infer.EmitSpan(open, e.stream)
	e.stream.AppendText(openChar[a.Delim])

	for _, child := range a.Children {
		e.emitLiteralAtom(child)
	}

	close := atom.Span{
		Start: atom.Position{Line: a.Span.End.Line, Column: a.Span.End.Column - 1},
		End:   a.Span.End,
	}
	e.infer.EmitSpan(close, e.stream)
	e.stream.AppendText(closeChar[a.Delim])
}

func (e *evaluator) emitValue(span atom.Span, v any, register bool) error {
	e.infer.EmitSpan(span, e.stream)
	if lv, ok := v.(lang.Value); ok {
		if register && lv.Importable {
			e.adapter.RegisterItem(lv, e.imports)
		}
		e.stream.AppendItem(lv.AsItem())
		return nil
	}
	e.stream.AppendText(fmt.Sprint(v))
	return nil
}

func (e *evaluator) emitQuotedString(n quasi.QuotedString, bindings Bindings) error {
	parts := make([]lang.StringPart, 0, len(n.Parts))
	for _, p := range n.Parts {
		if !p.IsInterp {
			parts = append(parts, lang.StringPart{Literal: true, Text: p.Text})
			continue
		}
		v, err := bindings.Eval(p.ExprVal)
		if err != nil {
			return fmt.Errorf("eval: %s: %w", p.ExprVal.Raw(), err)
		}
		rendered, err := e.renderScalar(v)
		if err != nil {
			return err
		}
		parts = append(parts, lang.StringPart{Literal: false, Value: rendered})
	}
	quoted, err := e.adapter.QuoteString(parts)
	if err != nil {
		return err
	}
	e.infer.EmitSpan(n.Span(), e.stream)
	e.stream.AppendText(quoted)
	return nil
}

// renderScalar produces the occurrence text for a value interpolated
// inside a quoted string: a lang.Value is registered (strings still
// import what they mention) and rendered through the adapter; anything
// else is formatted with fmt.Sprint.
func (e *evaluator) renderScalar(v any) (string, error) {
	if lv, ok := v.(lang.Value); ok {
		if lv.Importable {
			e.adapter.RegisterItem(lv, e.imports)
		}
		return e.adapter.RenderItem(lv, e.imports)
	}
	return fmt.Sprint(v), nil
}

func (e *evaluator) evalRepeat(n quasi.Repeat, bindings Bindings) error {
	iterable, err := bindings.Eval(n.Iterable)
	if err != nil {
		return fmt.Errorf("eval: $for %s: %w", n.Iterable.Raw(), err)
	}
	items, err := toSlice(iterable)
	if err != nil {
		return fmt.Errorf("eval: $for %s: %w", n.Iterable.Raw(), err)
	}
	for i, item := range items {
		if i > 0 && n.Join != nil {
			if err := e.evalJoinSeparator(*n.Join, n.JoinLeadingSpace, n.JoinTrailingSpace, bindings); err != nil {
				return err
			}
		}
		saved := e.infer.Enter()
		child := withBinding(bindings, n.Binding, item)
		if err := e.walkBody(n.Body, child); err != nil {
			return err
		}
		e.infer.Exit(saved, e.stream)
	}
	return nil
}

// evalJoinSeparator renders a $for...join(...) separator body with soft
// (suppressible) line breaks instead of hard ones, then restores the
// outer inferencer unchanged — the separator's own position bookkeeping
// never leaks into the loop body that follows it. leadingSpace/
// trailingSpace replay whitespace that sat just inside the separator's
// own parentheses, which no atom's span covers and the inferencer never
// sees on its own (spec.md §8's join law).
func (e *evaluator) evalJoinSeparator(body quasi.Body, leadingSpace, trailingSpace bool, bindings Bindings) error {
	orig := e.infer
	saved := orig.Save()
	e.infer = orig.WithSoftBreaks()
	if leadingSpace {
		e.stream.AppendText(" ")
	}
	err := e.walkBody(body, bindings)
	if err == nil && trailingSpace {
		e.stream.AppendText(" ")
	}
	e.infer = orig
	e.infer.Restore(saved)
	return err
}

func (e *evaluator) evalIf(n quasi.If, bindings Bindings) error {
	cond, err := bindings.Eval(n.Cond)
	if err != nil {
		return fmt.Errorf("eval: $if %s: %w", n.Cond.Raw(), err)
	}
	var body quasi.Body
	switch {
	case isTruthy(cond):
		body = n.Then
	case n.Else != nil:
		body = *n.Else
	default:
		return nil
	}
	saved := e.infer.Enter()
	if err := e.walkBody(body, bindings); err != nil {
		return err
	}
	e.infer.Exit(saved, e.stream)
	return nil
}

func (e *evaluator) evalMatch(n quasi.Match, bindings Bindings) error {
	scrutinee, err := bindings.Eval(n.Scrutinee)
	if err != nil {
		return fmt.Errorf("eval: $match %s: %w", n.Scrutinee.Raw(), err)
	}
	for _, arm := range n.Arms {
		for _, pat := range arm.Patterns {
			patVal, err := bindings.Eval(pat)
			if err != nil {
				return fmt.Errorf("eval: $match arm %s: %w", pat.Raw(), err)
			}
			if !valuesEqual(scrutinee, patVal) {
				continue
			}
			saved := e.infer.Enter()
			if err := e.walkBody(arm.Body, bindings); err != nil {
				return err
			}
			e.infer.Exit(saved, e.stream)
			return nil
		}
	}
	return fmt.Errorf("eval: $match %s: no arm matched", n.Scrutinee.Raw())
}

func valuesEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toSlice(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		keys := rv.MapKeys()
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(k).Interface()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not iterable: %T", v)
	}
}

func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	default:
		return true
	}
}
