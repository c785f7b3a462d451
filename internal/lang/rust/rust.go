// Package rust is the Rust lang.Language adapter: "use path;" statements
// sorted and deduplicated by path, concatenation-style strings (Rust has
// no string-template syntax), and raw-identifier escaping for keyword-
// shaped symbol names.
//
// The HashMap-import scenario (spec.md §8 scenario 4) is this adapter's
// worked example: registering std::collections::HashMap emits a "use"
// prefix and renders bare "HashMap" at the point of occurrence.
package rust

import (
	"fmt"
	"io"
	"sort"

	"github.com/dlclark/regexp2"

	"github.com/udoprog/genco/internal/lang"
)

type imp struct {
	path string
	name string
}

func New() lang.Language {
	return adapter{}
}

type adapter struct{}

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"}
}

func (adapter) QuoteString(parts []lang.StringPart) (string, error) {
	return lang.ConcatQuote(parts, lang.EscapeDoubleQuoted)
}

func (adapter) RegisterItem(v lang.Value, set *lang.ImportSet) {
	im, ok := v.Data.(imp)
	if !ok || im.path == "" {
		return
	}
	set.Add(im.path, v)
}

func (adapter) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	im, ok := v.Data.(imp)
	if !ok {
		return "", &lang.FormatError{Reason: fmt.Sprintf("rust: not an import value: %T", v.Data)}
	}
	return EscapeIdent(im.name, "")
}

func (adapter) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	entries := set.Entries()
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if im, ok := e.Value.Data.(imp); ok {
			paths = append(paths, im.path)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	for i, p := range paths {
		if i > 0 {
			if _, err := io.WriteString(w, cfg.LineEnding); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "use "+p+";"); err != nil {
			return err
		}
	}
	return nil
}

// Import builds an importable Value for a fully qualified Rust path,
// occurring as the given name (e.g. name "HashMap" for path
// "std::collections::HashMap").
func Import(path, name string) lang.Value {
	return lang.Value{Data: imp{path: path, name: name}, Importable: true}
}

// HashMap is the std::collections::HashMap import (spec.md §8 scenario 4).
func HashMap() lang.Value {
	return Import("std::collections::HashMap", "HashMap")
}

// keywordPattern matches a Rust keyword that is NOT immediately followed
// by "!" (a macro invocation) or "::" (a path segment) — the one place a
// keyword-shaped identifier needs raw-identifier escaping. A trailing
// negative lookahead is exactly what the RE2-derived stdlib regexp
// package cannot express; regexp2 supports it directly.
var keywordPattern = regexp2.MustCompile(
	`^(as|break|const|continue|crate|dyn|else|enum|extern|false|fn|for|if|impl|in|let|loop|match|mod|move|mut|pub|ref|return|self|Self|static|struct|super|trait|true|try|type|unsafe|use|where|while|async|await)(?!!|::)$`,
	regexp2.None,
)

// NeedsRawIdent reports whether name must be escaped as "r#name" to be
// used as an identifier, given suffix — whatever immediately follows it
// in the rendered output. Pass "" when that context isn't tracked.
func NeedsRawIdent(name, suffix string) (bool, error) {
	return keywordPattern.MatchString(name + suffix)
}

// EscapeIdent returns name, prefixed with "r#" if NeedsRawIdent reports
// true for (name, suffix).
func EscapeIdent(name, suffix string) (string, error) {
	needs, err := NeedsRawIdent(name, suffix)
	if err != nil {
		return name, err
	}
	if needs {
		return "r#" + name, nil
	}
	return name, nil
}
