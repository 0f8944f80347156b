// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframes/descriptor.go
// Summary: Timeline descriptors: a named, offset-ordered set of style frames.
// Usage: Presets build a Descriptor per cycle and hand it to Compile or Define.

// Package keyframes turns timeline descriptors into declarative rule text and
// installs that text, singly or in batches, through an Installer.
package keyframes

import "sort"

// Prop is a single style property inside a frame.
type Prop struct {
	Name  string
	Value string
}

// Frame holds the properties applied at one percentage offset of a timeline.
type Frame struct {
	Offset float64
	Props  []Prop
}

// Descriptor is a named timeline. Frames are kept sorted by offset.
type Descriptor struct {
	Name   string
	Frames []Frame
}

// New returns an empty descriptor with the given rule name.
func New(name string) *Descriptor {
	return &Descriptor{Name: name}
}

// Set merges props into the frame at offset. Two offsets that render to the
// same percentage text address the same frame; a property already present on
// that frame is overwritten in place.
func (d *Descriptor) Set(offset float64, props ...Prop) *Descriptor {
	key := FormatPercent(offset)
	for i := range d.Frames {
		if FormatPercent(d.Frames[i].Offset) != key {
			continue
		}
		d.Frames[i].Props = mergeProps(d.Frames[i].Props, props)
		return d
	}
	frame := Frame{Offset: offset, Props: mergeProps(nil, props)}
	idx := sort.Search(len(d.Frames), func(i int) bool { return d.Frames[i].Offset > offset })
	d.Frames = append(d.Frames, Frame{})
	copy(d.Frames[idx+1:], d.Frames[idx:])
	d.Frames[idx] = frame
	return d
}

// Len reports the number of frames.
func (d *Descriptor) Len() int {
	return len(d.Frames)
}

func mergeProps(dst, src []Prop) []Prop {
	for _, p := range src {
		replaced := false
		for i := range dst {
			if dst[i].Name == p.Name {
				dst[i].Value = p.Value
				replaced = true
				break
			}
		}
		if !replaced {
			dst = append(dst, p)
		}
	}
	return dst
}

// Transform builds a transform property.
func Transform(value string) Prop {
	return Prop{Name: "transform", Value: value}
}

// Opacity builds an opacity property on the 0..1 scale.
func Opacity(v float64) Prop {
	return Prop{Name: "opacity", Value: FormatOpacity(v)}
}
