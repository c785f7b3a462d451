// Package dart is the Dart lang.Language adapter: "import 'package:...'"
// directives, string templates ("$name" / "${expr}" embedded directly in
// the quoted literal) — spec.md §8 scenario 6's worked example.
package dart

import (
	"fmt"
	"io"
	"sort"

	"github.com/udoprog/genco/internal/lang"
)

type imp struct {
	uri string // e.g. "package:collection/collection.dart", "dart:convert"
}

func New() lang.Language {
	return adapter{}
}

type adapter struct{}

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: lang.IndentUnit{Spaces: 2}, LineEnding: "\n"}
}

// QuoteString embeds interpolations directly: a bare identifier becomes
// "$name", anything else "${value}" (spec.md §8 scenario 6).
func (adapter) QuoteString(parts []lang.StringPart) (string, error) {
	return lang.TemplateQuote(parts, true, lang.EscapeDoubleQuoted)
}

func (adapter) RegisterItem(v lang.Value, set *lang.ImportSet) {
	im, ok := v.Data.(imp)
	if !ok || im.uri == "" {
		return
	}
	set.Add(im.uri, v)
}

func (adapter) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	if _, ok := v.Data.(imp); !ok {
		return "", &lang.FormatError{Reason: fmt.Sprintf("dart: not an import value: %T", v.Data)}
	}
	// A Dart import has no per-symbol occurrence form distinct from the
	// symbol's own name in source text; the adapter's role here is only
	// to have registered the URI. Interpolating an import value directly
	// is unusual in Dart generation and renders empty.
	return "", nil
}

func (adapter) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	entries := set.Entries()
	uris := make([]string, 0, len(entries))
	for _, e := range entries {
		if im, ok := e.Value.Data.(imp); ok {
			uris = append(uris, im.uri)
		}
	}
	if len(uris) == 0 {
		return nil
	}
	sort.Strings(uris)
	for i, u := range uris {
		if i > 0 {
			if _, err := io.WriteString(w, cfg.LineEnding); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "import '"+u+"';"); err != nil {
			return err
		}
	}
	return nil
}

// Import builds an importable Value for a Dart library URI.
func Import(uri string) lang.Value {
	return lang.Value{Data: imp{uri: uri}, Importable: true}
}
