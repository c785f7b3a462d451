package main

import (
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// debugWriter returns a Windows-safe stderr writer, used for the
// --debug-ast/--debug-its dumps. repr.Println already does its own ANSI
// coloring when it detects a terminal; colorable.NewColorable makes that
// survive on a Windows console instead of emitting raw escape codes.
func debugWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return colorable.NewColorable(os.Stderr)
	}
	return colorable.NewNonColorable(os.Stderr)
}

func dump(label string, v any) {
	w := debugWriter()
	io.WriteString(w, label+":\n")
	io.WriteString(w, repr.String(v, repr.Indent("  ")))
	io.WriteString(w, "\n")
}
