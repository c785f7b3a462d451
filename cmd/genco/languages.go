package main

import (
	"fmt"
	"sort"

	"github.com/udoprog/genco/internal/lang"
	"github.com/udoprog/genco/internal/lang/c"
	"github.com/udoprog/genco/internal/lang/csharp"
	"github.com/udoprog/genco/internal/lang/dart"
	"github.com/udoprog/genco/internal/lang/golang"
	"github.com/udoprog/genco/internal/lang/java"
	"github.com/udoprog/genco/internal/lang/javascript"
	"github.com/udoprog/genco/internal/lang/kotlin"
	"github.com/udoprog/genco/internal/lang/python"
	"github.com/udoprog/genco/internal/lang/rust"
)

var languageFactories = map[string]func() lang.Language{
	"rust":       rust.New,
	"go":         golang.New,
	"golang":     golang.New,
	"dart":       dart.New,
	"java":       java.New,
	"csharp":     csharp.New,
	"cs":         csharp.New,
	"kotlin":     kotlin.New,
	"javascript": javascript.New,
	"js":         javascript.New,
	"python":     python.New,
	"py":         python.New,
	"c":          c.New,
}

func resolveLanguage(name string) (lang.Language, error) {
	factory, ok := languageFactories[name]
	if !ok {
		names := make([]string, 0, len(languageFactories))
		for k := range languageFactories {
			names = append(names, k)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown language %q (known: %v)", name, names)
	}
	return factory(), nil
}
