// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframes/parse.go
// Summary: Parses compiled rule text back into descriptors and transform values.
// Usage: The player evaluates installed rules against wall time.

package keyframes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRule reports rule text that does not follow the @keyframes grammar.
var ErrMalformedRule = errors.New("keyframes: malformed rule")

const keyframesAt = "@keyframes"

// Parse reads one or more concatenated @keyframes blocks.
func Parse(text string) ([]*Descriptor, error) {
	var out []*Descriptor
	rest := strings.TrimSpace(text)
	for rest != "" {
		if !strings.HasPrefix(rest, keyframesAt) {
			return nil, fmt.Errorf("%w: expected %s near %q", ErrMalformedRule, keyframesAt, clip(rest))
		}
		rest = rest[len(keyframesAt):]
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return nil, fmt.Errorf("%w: missing block for %q", ErrMalformedRule, clip(rest))
		}
		name := strings.TrimSpace(rest[:open])
		if name == "" {
			return nil, fmt.Errorf("%w: empty rule name", ErrMalformedRule)
		}
		d := New(name)
		rest = strings.TrimSpace(rest[open+1:])
		for {
			if rest == "" {
				return nil, fmt.Errorf("%w: unterminated rule %q", ErrMalformedRule, name)
			}
			if rest[0] == '}' {
				rest = strings.TrimSpace(rest[1:])
				break
			}
			fo := strings.IndexByte(rest, '{')
			fc := strings.IndexByte(rest, '}')
			if fo < 0 || fc < fo {
				return nil, fmt.Errorf("%w: bad frame in %q", ErrMalformedRule, name)
			}
			offset, err := parseSelector(strings.TrimSpace(rest[:fo]))
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %v", ErrMalformedRule, name, err)
			}
			props, err := parseProps(rest[fo+1 : fc])
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %v", ErrMalformedRule, name, err)
			}
			d.Set(offset, props...)
			rest = strings.TrimSpace(rest[fc+1:])
		}
		out = append(out, d)
	}
	return out, nil
}

func parseSelector(sel string) (float64, error) {
	switch sel {
	case "from":
		return 0, nil
	case "to":
		return 100, nil
	}
	if !strings.HasSuffix(sel, "%") {
		return 0, fmt.Errorf("selector %q is not a percentage", sel)
	}
	return strconv.ParseFloat(strings.TrimSuffix(sel, "%"), 64)
}

func parseProps(body string) ([]Prop, error) {
	var props []Prop
	for _, decl := range strings.Split(body, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colon := strings.IndexByte(decl, ':')
		if colon <= 0 {
			return nil, fmt.Errorf("declaration %q has no property name", decl)
		}
		props = append(props, Prop{
			Name:  strings.TrimSpace(decl[:colon]),
			Value: strings.TrimSpace(decl[colon+1:]),
		})
	}
	return props, nil
}

// Motion is a decoded transform value.
type Motion struct {
	X, Y   float64
	Rotate float64
}

// ParseTransform decodes "translate(<x>px,<y>px)" optionally followed by
// "rotate(<deg>deg)". Unknown functions are rejected.
func ParseTransform(value string) (Motion, error) {
	var m Motion
	rest := strings.TrimSpace(value)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			return Motion{}, fmt.Errorf("%w: transform %q", ErrMalformedRule, value)
		}
		fn := strings.TrimSpace(rest[:open])
		args := strings.Split(rest[open+1:closing], ",")
		switch fn {
		case "translate":
			if len(args) != 2 {
				return Motion{}, fmt.Errorf("%w: translate needs two arguments in %q", ErrMalformedRule, value)
			}
			x, err := parseUnit(args[0], "px")
			if err != nil {
				return Motion{}, err
			}
			y, err := parseUnit(args[1], "px")
			if err != nil {
				return Motion{}, err
			}
			m.X, m.Y = x, y
		case "rotate":
			if len(args) != 1 {
				return Motion{}, fmt.Errorf("%w: rotate needs one argument in %q", ErrMalformedRule, value)
			}
			deg, err := parseUnit(args[0], "deg")
			if err != nil {
				return Motion{}, err
			}
			m.Rotate = deg
		default:
			return Motion{}, fmt.Errorf("%w: unsupported transform %q", ErrMalformedRule, fn)
		}
		rest = strings.TrimSpace(rest[closing+1:])
	}
	return m, nil
}

func parseUnit(raw, unit string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), unit), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}
	return v, nil
}

func clip(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}
