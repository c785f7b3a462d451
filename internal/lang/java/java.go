// Package java is the Java lang.Language adapter: "import path;"
// statements, double-quoted non-template strings.
package java

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/cfamily"
)

// New returns the Java adapter.
func New() lang.Language {
	return cfamily.Base{
		Cfg:        lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"},
		ImportLine: func(path string) string { return "import " + path + ";" },
	}
}

// Import builds an importable Value for a fully qualified Java type, e.g.
// Import("java.util.List", "List").
func Import(path, name string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: path, Name: name}, Importable: true}
}
