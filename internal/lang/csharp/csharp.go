// Package csharp is the C# lang.Language adapter: "using Namespace;"
// statements, double-quoted non-template strings.
package csharp

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/cfamily"
)

// New returns the C# adapter.
func New() lang.Language {
	return cfamily.Base{
		Cfg:        lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"},
		ImportLine: func(path string) string { return "using " + path + ";" },
	}
}

// Import builds an importable Value for a namespace member, e.g.
// Import("System.Collections.Generic", "List").
func Import(namespace, name string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: namespace, Name: name}, Importable: true}
}
