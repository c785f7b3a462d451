// Command genco renders quasiquote templates for a chosen target
// language, or checks one for parse errors without rendering it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udoprog/genco/internal/atomizer"
	"github.com/udoprog/genco/internal/eval"
	"github.com/udoprog/genco/internal/quasi"

	"github.com/udoprog/genco"
)

type rootFlags struct {
	lang       string
	config     string
	indent     int
	crlf       bool
	flat       bool
	debugAST   bool
	debugITS   bool
	vars       []string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "genco",
		Short:         "Render whitespace-aware quasiquote templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.lang, "lang", "", "target language (rust, go, dart, java, csharp, kotlin, javascript, python, c)")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "YAML config file (indentation, line_ending, language)")
	root.PersistentFlags().IntVar(&flags.indent, "indent", 0, "indent width in spaces (overrides --config and the adapter default)")
	root.PersistentFlags().BoolVar(&flags.crlf, "crlf", false, "use CRLF line endings")
	root.PersistentFlags().BoolVar(&flags.flat, "flat", false, "disable whitespace inference; one space between every atom")
	root.PersistentFlags().BoolVar(&flags.debugAST, "debug-ast", false, "dump the parsed template AST to stderr")
	root.PersistentFlags().BoolVar(&flags.debugITS, "debug-its", false, "dump the intermediate token stream to stderr")
	root.PersistentFlags().StringArrayVar(&flags.vars, "var", nil, "binding in name=value form, repeatable")

	root.AddCommand(newRenderCommand(flags))
	root.AddCommand(newCheckCommand(flags))
	return root
}

func newRenderCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Render a template to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(flags, args[0])
		},
	}
}

func newCheckCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a template and report errors without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(flags, args[0])
		},
	}
}

func runRender(flags *rootFlags, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc, err := loadFileConfig(flags.config)
	if err != nil {
		return err
	}

	name := flags.lang
	if name == "" {
		name = fc.Language
	}
	language, err := resolveLanguage(name)
	if err != nil {
		return err
	}

	cfg := fc.toRenderConfig()
	if flags.indent > 0 {
		cfg.Indent.Spaces = flags.indent
		cfg.Indent.Tab = false
	}
	if flags.crlf {
		cfg.LineEnding = "\r\n"
	}

	bindings, err := parseVarBindings(flags.vars)
	if err != nil {
		return err
	}

	atoms, err := atomizer.Atomize(string(src))
	if err != nil {
		return err
	}

	if flags.debugAST || flags.debugITS {
		tmpl, errs := quasi.Parse(atoms)
		if flags.debugAST {
			dump("ast", tmpl)
		}
		if len(errs) > 0 {
			return errs[0]
		}
		if flags.debugITS {
			stream, _, err := eval.Eval(tmpl, language, bindings, flags.flat)
			if err != nil {
				return err
			}
			dump("its", stream.Tokens())
		}
	}

	var out string
	if flags.flat {
		out, err = genco.RenderAtomsFlat(language, atoms, bindings, cfg)
	} else {
		out, err = genco.RenderAtoms(language, atoms, bindings, cfg)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out)
	return err
}

func runCheck(flags *rootFlags, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	atoms, err := atomizer.Atomize(string(src))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	_, errs := quasi.Parse(atoms)
	if len(errs) == 0 {
		fmt.Println("ok")
		return nil
	}
	for _, e := range errs {
		fmt.Println(e)
	}
	os.Exit(1)
	return nil
}

func parseVarBindings(vars []string) (eval.Map, error) {
	m := eval.Map{}
	for _, v := range vars {
		name, value, ok := splitVar(v)
		if !ok {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", v)
		}
		m[name] = value
	}
	return m, nil
}

func splitVar(s string) (name, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
