// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframes/compile.go
// Summary: Serialises descriptors into @keyframes rule text.
// Notes: Numbers are rendered with one decimal; they feed rendering properties only.

package keyframes

import (
	"strconv"
	"strings"
)

// Compile serialises d into rule text of the form
//
//	@keyframes name { 0.0% { transform:translate(0.0px,0.0px); } ... }
func Compile(d *Descriptor) string {
	var b strings.Builder
	b.Grow(32 + len(d.Frames)*48)
	b.WriteString("@keyframes ")
	b.WriteString(d.Name)
	b.WriteString(" {")
	for _, f := range d.Frames {
		b.WriteByte(' ')
		b.WriteString(FormatPercent(f.Offset))
		b.WriteString(" {")
		for _, p := range f.Props {
			b.WriteByte(' ')
			b.WriteString(p.Name)
			b.WriteByte(':')
			b.WriteString(p.Value)
			b.WriteByte(';')
		}
		b.WriteString(" }")
	}
	b.WriteString(" }")
	return b.String()
}

// CompileIndented renders d across several lines for reading. The result
// parses back to the same descriptor as Compile's.
func CompileIndented(d *Descriptor) string {
	var b strings.Builder
	b.WriteString("@keyframes ")
	b.WriteString(d.Name)
	b.WriteString(" {\n")
	for _, f := range d.Frames {
		b.WriteString("  ")
		b.WriteString(FormatPercent(f.Offset))
		b.WriteString(" {")
		for _, p := range f.Props {
			b.WriteString(" ")
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(p.Value)
			b.WriteByte(';')
		}
		b.WriteString(" }\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Define compiles d and installs it under its own name.
func Define(inst Installer, d *Descriptor) {
	inst.InstallOrReplace(d.Name, Compile(d))
}

// FormatNumber renders v with one decimal place. Negative zero prints as 0.0.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// FormatPercent renders an offset as "<n.n>%".
func FormatPercent(offset float64) string {
	return FormatNumber(offset) + "%"
}

// FormatOpacity renders an opacity without trailing zeros ("1", "0.7", "0").
func FormatOpacity(v float64) string {
	if v <= 0 {
		return "0"
	}
	if v >= 1 {
		return "1"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Translate renders a translate transform in pixels.
func Translate(x, y float64) string {
	return "translate(" + FormatNumber(x) + "px," + FormatNumber(y) + "px)"
}

// TranslateRotate renders a translate followed by a rotate in degrees.
func TranslateRotate(x, y, deg float64) string {
	return Translate(x, y) + " rotate(" + FormatNumber(deg) + "deg)"
}
