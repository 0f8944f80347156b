// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/highlight/highlight.go
// Summary: Colourises keyframe rule text for terminal dumps using Chroma's CSS lexer.

package highlight

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	defaultStyleName     = "catppuccin-mocha"
	defaultFormatterName = "terminal256"
)

// Options selects the Chroma style and formatter. Empty fields use defaults.
type Options struct {
	Style     string
	Formatter string
}

// Plain disables colour while keeping the same code path.
var Plain = Options{Formatter: "noop"}

// Style resolves a style name, falling back to the default.
func Style(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

func lexer() chroma.Lexer {
	if l := lexers.Get("css"); l != nil {
		return chroma.Coalesce(l)
	}
	return lexers.Fallback
}

// Write tokenises css and writes it to w through the selected formatter.
func Write(w io.Writer, css string, opts Options) error {
	name := opts.Formatter
	if name == "" {
		name = defaultFormatterName
	}
	formatter, ok := formatters.Registry[name]
	if !ok {
		return fmt.Errorf("highlight: unknown formatter %q", name)
	}
	it, err := lexer().Tokenise(nil, css)
	if err != nil {
		return fmt.Errorf("highlight: tokenise: %w", err)
	}
	return formatter.Format(w, Style(opts.Style), it)
}
