// Package kotlin is the Kotlin lang.Language adapter: "import path"
// statements, string templates ("$name" / "${expr}").
package kotlin

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/cfamily"
)

// New returns the Kotlin adapter.
func New() lang.Language {
	return cfamily.Base{
		Cfg:        lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"},
		ImportLine: func(path string) string { return "import " + path },
		Template:   true,
		BareInterp: true,
	}
}

// Import builds an importable Value for a fully qualified Kotlin name.
func Import(path, name string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: path, Name: name}, Importable: true}
}
