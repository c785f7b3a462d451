// Package python is the Python lang.Language adapter: "import module" or
// "from module import name" statements, sorted and deduplicated by
// module and imported name, concatenation-style strings (no f-string support attempted —
// genco callers that want interpolation inside a literal already have
// $(expr), an f-string would just be a second way to spell the same
// thing).
package python

import (
	"fmt"
	"io"
	"sort"

	"github.com/udoprog/genco/internal/lang"
)

type imp struct {
	module string
	name   string // "" for a bare "import module"
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
	if !ok || im.module == "" {
		return
	}
	set.Add(im.module+"\x00"+im.name, v)
}

func (adapter) RenderItem(v lang.Value, _ *lang.ImportSet) (string, error) {
	im, ok := v.Data.(imp)
	if !ok {
		return "", &lang.FormatError{Reason: fmt.Sprintf("python: not an import value: %T", v.Data)}
	}
	if im.name != "" {
		return im.name, nil
	}
	return im.module, nil
}

func (adapter) EmitImports(set *lang.ImportSet, w io.Writer, cfg lang.Config) error {
	entries := set.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		im, ok := e.Value.Data.(imp)
		if !ok {
			continue
		}
		if im.name == "" {
			lines = append(lines, "import "+im.module)
		} else {
			lines = append(lines, "from "+im.module+" import "+im.name)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	sort.Strings(lines)
	for i, l := range lines {
		if i > 0 {
			if _, err := io.WriteString(w, cfg.LineEnding); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, l); err != nil {
			return err
		}
	}
	return nil
}

// Module builds an importable Value for a bare "import module".
func Module(module string) lang.Value {
	return lang.Value{Data: imp{module: module}, Importable: true}
}

// From builds an importable Value for "from module import name".
func From(module, name string) lang.Value {
	return lang.Value{Data: imp{module: module, name: name}, Importable: true}
}
