// Package javascript is the JavaScript lang.Language adapter:
// "import { name } from 'path';" statements, template-literal strings
// ("${expr}" — JS has no bare-$name form, unlike Kotlin/Dart).
package javascript

import (
	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/cfamily"
)

// New returns the JavaScript adapter.
func New() lang.Language {
	return cfamily.Base{
		Cfg:        lang.Config{Indent: lang.IndentUnit{Spaces: 2}, LineEnding: "\n"},
		ImportLine: func(path string) string { return "import " + path + ";" },
		Template:   true,
		BareInterp: false,
	}
}

// Import builds an importable Value for a module specifier, rendered
// verbatim as the import statement's body (e.g. "{ useState } from
// 'react'") since JS import syntax can't be reduced to a bare path.
func Import(spec, name string) lang.Value {
	return lang.Value{Data: cfamily.Import{Path: spec, Name: name}, Importable: true}
}
