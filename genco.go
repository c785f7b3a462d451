// Package genco is a whitespace-aware quasiquoter: it expands a small
// '$'-prefixed interpolation sublanguage embedded in otherwise opaque
// target-language source, inferring line breaks and indentation from the
// positions of the surrounding atoms rather than from literal whitespace,
// and renders the result through a pluggable per-language adapter.
//
// This is the module callers import; it ties together the interpolation
// parser (internal/quasi), the whitespace inferencer (internal/whitespace),
// the evaluator (internal/eval), and the formatter (internal/format), and
// owns the three error kinds a render can fail with (spec.md §7).
package genco

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/udoprog/genco/internal/atom"
	"github.com/udoprog/genco/internal/atomizer"
	"github.com/udoprog/genco/internal/eval"
	"github.com/udoprog/genco/internal/format"
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/quasi"
)

// Bindings is the host value environment a render evaluates expressions
// against.
type Bindings = eval.Bindings

// Map is the common Bindings implementation: a flat table of names to
// values, with Eval understanding only a bare identifier.
type Map = eval.Map

// Config is render-scoped formatting configuration (spec.md §6): the
// indent unit and line ending. Zero-value fields fall back to the
// target language adapter's DefaultConfig.
type Config = lang.Config

// Logger receives an entry only when a render fails (parse, evaluation,
// format or sink error), tagged with a per-render ID; the target language
// is not recorded and a successful render logs nothing. Replace it (e.g. with a logger writing to io.Discard)
// to silence it; this package never calls logrus's global/package-level
// logging functions directly.
var Logger = logrus.StandardLogger()

// Render parses src as a quasiquote template, evaluates it against
// bindings, and formats the result for language, returning the rendered
// source text.
func Render(language lang.Language, src string, bindings Bindings, cfg Config) (string, error) {
	atoms, err := atomizer.Atomize(src)
	if err != nil {
		return "", err
	}
	return render(language, atoms, bindings, cfg, false)
}

// RenderAtoms is Render's entry point for a caller that has already
// atomized its source (e.g. a host embedding its own tokenizer ahead of
// genco).
func RenderAtoms(language lang.Language, atoms []atom.Atom, bindings Bindings, cfg Config) (string, error) {
	return render(language, atoms, bindings, cfg, false)
}

// RenderFlat is Render with the whitespace inferencer's position
// reasoning disabled: every adjacent pair of atoms is separated by at
// most a single space, with no inferred indentation at all. This is the
// Design Notes' degraded fallback (SPEC_FULL.md §13); no other render
// path enters it, whatever the atoms' positions.
func RenderFlat(language lang.Language, src string, bindings Bindings, cfg Config) (string, error) {
	atoms, err := atomizer.Atomize(src)
	if err != nil {
		return "", err
	}
	return render(language, atoms, bindings, cfg, true)
}

// RenderAtomsFlat is RenderFlat's entry point for an already-atomized source.
func RenderAtomsFlat(language lang.Language, atoms []atom.Atom, bindings Bindings, cfg Config) (string, error) {
	return render(language, atoms, bindings, cfg, true)
}

func render(language lang.Language, atoms []atom.Atom, bindings Bindings, cfg Config, flat bool) (string, error) {
	log := Logger.WithFields(logrus.Fields{
		"render_id": uuid.NewString(),
	})

	tmpl, errs := quasi.Parse(atoms)
	if len(errs) > 0 {
		log.WithField("parse_errors", len(errs)).Warn("genco: parse failed")
		return "", errs[0]
	}

	stream, imports, err := eval.Eval(tmpl, language, bindings, flat)
	if err != nil {
		log.WithError(err).Warn("genco: evaluation failed")
		return "", err
	}

	resolved := resolveConfig(language, cfg)

	var sb strings.Builder
	if err := format.Format(&sb, stream, imports, language, resolved); err != nil {
		var we *format.WriteError
		if errors.As(err, &we) {
			se := &SinkError{Err: we.Err}
			log.WithError(se).Error("genco: sink write failed")
			return "", se
		}
		log.WithError(err).Warn("genco: format failed")
		return "", err
	}
	return sb.String(), nil
}

func resolveConfig(language lang.Language, cfg Config) Config {
	def := language.DefaultConfig()
	if cfg.LineEnding == "" {
		cfg.LineEnding = def.LineEnding
	}
	if cfg.Indent == (lang.IndentUnit{}) {
		cfg.Indent = def.Indent
	}
	return cfg
}
