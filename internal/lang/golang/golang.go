// Package golang is the Go lang.Language adapter: a single grouped
// "import (...)" block, double-quoted concatenation-style strings (Go
// has no string-template syntax).
//
// Grounded on the teacher's internal/backend/go_backend.go, whose import
// rendering this adapter's EmitImports directly descends from.
package golang

import (
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/udoprog/genco/internal/lang"
)

type imp struct {
	path  string
	alias string // "" unless set explicitly through ImportAs
}

func New() lang.Language {
	return adapter{}
}

type adapter struct{}

func (adapter) DefaultConfig() lang.Config {
	return lang.Config{Indent: lang.IndentUnit{Tab: true}, LineEnding: "\n"}
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
		return "", &lang.FormatError{Reason: fmt.Sprintf("golang: not an import value: %T", v.Data)}
	}
	if im.alias != "" {
		return im.alias, nil
	}
	return path.Base(im.path), nil
}

func (adapter) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	entries := set.Entries()
	if len(entries) == 0 {
		return nil
	}
	paths := make([]string, 0, len(entries))
	aliases := make(map[string]string, len(entries))
	for _, e := range entries {
		if im, ok := e.Value.Data.(imp); ok {
			paths = append(paths, im.path)
			if im.alias != "" {
				aliases[im.path] = im.alias
			}
		}
	}
	sort.Strings(paths)
	if _, err := io.WriteString(w, "import ("+cfg.LineEnding); err != nil {
		return err
	}
	for _, p := range paths {
		line := "\t"
		if a, ok := aliases[p]; ok {
			line += a + " "
		}
		line += `"` + p + `"` + cfg.LineEnding
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ")"); err != nil {
		return err
	}
	return nil
}

// Import builds an importable Value for a Go package path, occurring as
// its last path segment (e.g. "fmt" for "fmt", "json-patch" for
// "github.com/evanphx/json-patch").
func Import(importPath string) lang.Value {
	return lang.Value{Data: imp{path: importPath}, Importable: true}
}

// ImportAs builds an importable Value with an explicit occurrence alias,
// for when the last path segment doesn't match the package's declared
// name.
func ImportAs(importPath, alias string) lang.Value {
	return lang.Value{Data: imp{path: importPath, alias: alias}, Importable: true}
}
