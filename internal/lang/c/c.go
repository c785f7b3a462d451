// Package c is the C lang.Language adapter: "#include <path>" or
// "#include \"path\"" directives, double-quoted non-template strings.
package c

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/cfamily"
)

// New returns the C adapter.
func New() lang.Language {
	return cfamily.Base{
		Cfg:        lang.Config{Indent: lang.IndentUnit{Spaces: 4}, LineEnding: "\n"},
		ImportLine: func(path string) string { return "#include " + path },
	}
}

// SystemHeader builds an importable Value for a system header, e.g.
// SystemHeader("stdio.h") registers "#include <stdio.h>"; Name is left
// empty since C headers have no single occurrence symbol to render.
func SystemHeader(header string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: "<" + header + ">", Name: ""}, Importable: true}
}

// LocalHeader builds an importable Value for a project-local header,
// rendered as "#include \"path\"".
func LocalHeader(path string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: `"` + path + `"`, Name: ""}, Importable: true}
}
