// Package cfamily is the shared adapter helper for the brace-delimited,
// C-descended target languages (java, csharp, kotlin, javascript, c):
// identical import grouping and dedup, identical string escaping, the
// languages differ only in import syntax, default formatting config, and
// whether their string literals support embedded interpolation.
//
// Grounded on the teacher's internal/backend/go_backend.go import-block
// rendering, generalized from one fixed Go `import (...)` block into a
// policy table so java/csharp/kotlin/javascript/c can each supply their
// own import keyword and separator while sharing everything else.
package cfamily

import (
	"fmt"
	"io"
	"sort"

	"github.com/udoprog/genco/internal/lang"
)

// Import is the Value.Data payload for every brace-family adapter: a
// fully qualified name to import, and the short name an occurrence
// renders as.
type Import struct {
	Path string
	Name string
}

// Base implements lang.Language for one brace-family language. Concrete
// adapters construct a Base with their own ImportLine/Template/BareInterp
// policy and return it as their lang.Language, so the shared logic is not
// repeated five times.
type Base struct {
	Cfg lang.Config
	// ImportLine renders one sorted, deduplicated import path as a
	// complete source line (including any trailing semicolon).
	ImportLine func(path string) string
	// Template selects embedded-interpolation string literals (kotlin,
	// javascript) over "+"-concatenation (java, csharp, c).
	Template bool
	// BareInterp allows "$name" without braces when Template is set and
	// the interpolated value is a simple identifier (kotlin).
	BareInterp bool
}

func (b Base) DefaultConfig() lang.Config { return b.Cfg }

func (b Base) QuoteString(parts []lang.StringPart) (string, error) {
	if b.Template {
		return lang.TemplateQuote(parts, b.BareInterp, lang.EscapeDoubleQuoted)
	}
	return lang.ConcatQuote(parts, lang.EscapeDoubleQuoted)
}

func (b Base) RegisterItem(v lang.Value, set *lang.ImportSet) {
	imp, ok := v.Data.(Import)
	if !ok || imp.Path == "" {
		return
	}
	set.Add(imp.Path, v)
}

func (b Base) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	imp, ok := v.Data.(Import)
	if !ok {
		return "", &lang.FormatError{Reason: fmt.Sprintf("cfamily: not an Import value: %T", v.Data)}
	}
	return imp.Name, nil
}

func (b Base) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	entries := set.Entries()
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if imp, ok := e.Value.Data.(Import); ok {
			paths = append(paths, imp.Path)
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
		if _, err := io.WriteString(w, b.ImportLine(p)); err != nil {
			return err
		}
	}
	return nil
}
