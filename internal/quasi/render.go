package quasi

import (
	"strings"

	"github.com/udoprog/genco/internal/atom"
)

var openChar = map[atom.Delimiter]string{atom.Paren: "(", atom.Brace: "{", atom.Bracket: "["}
var closeChar = map[atom.Delimiter]string{atom.Paren: ")", atom.Brace: "}", atom.Bracket: "]"}

func renderAtoms(atoms []atom.Atom) string {
	var b strings.Builder
	var prev atom.Atom
	hasPrev := false
	for _, a := range atoms {
		if hasPrev && !atom.Joint(prev, a) {
			b.WriteByte(' ')
		}
		switch a.Kind {
		case atom.Group:
			b.WriteString(openChar[a.Delim])
			b.WriteString(renderAtoms(a.Children))
			b.WriteString(closeChar[a.Delim])
		default:
			b.WriteString(a.Text)
		}
		prev = a
		hasPrev = true
	}
	return b.String()
}
