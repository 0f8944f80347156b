// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/node.go
// Summary: Presentation node: classes, inline styles, children and one-shot listeners.

package dom

import (
	"github.com/framegrace/hotcold/anim"
)

// Node is one element of the presentation tree.
type Node struct {
	doc      *Document
	id       string
	text     string
	classes  []string
	style    map[string]string
	parent   *Node
	children []*Node
	width    float64
	attached bool

	listeners []*listener

	classAdds    map[string]int
	classRemoves map[string]int

	// epoch increments every time the node's animation restarts.
	epoch     uint64
	cleared   bool
	clearedAt int
}

// ID returns the node id, possibly empty.
func (n *Node) ID() string { return n.id }

// Text returns the node's text content.
func (n *Node) Text() string { return n.text }

// SetText replaces the text content.
func (n *Node) SetText(text string) { n.text = text }

// Classes returns a copy of the class list.
func (n *Node) Classes() []string { return append([]string(nil), n.classes...) }

// HasClass reports whether class is present.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass implements anim.Element.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
	n.classAdds[class]++
	n.applied()
}

// RemoveClass implements anim.Element.
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			n.classRemoves[class]++
			n.clear()
			return
		}
	}
}

// ClassAdds counts how many times class was added.
func (n *Node) ClassAdds(class string) int { return n.classAdds[class] }

// ClassRemoves counts how many times class was removed.
func (n *Node) ClassRemoves(class string) int { return n.classRemoves[class] }

// ReadLayout implements anim.Element. Every call counts as a forced reflow.
func (n *Node) ReadLayout() float64 {
	n.doc.reflows++
	return n.width
}

// Width implements anim.Element. Nodes without an explicit width inherit
// their parent's.
func (n *Node) Width() float64 {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.width > 0 {
			return cur.width
		}
	}
	return 0
}

// SetWidth sets the node's layout width.
func (n *Node) SetWidth(w float64) { n.width = w }

// SetStyle implements anim.Element. Clearing animation-name behaves like
// removing the animation; setting it re-applies one.
func (n *Node) SetStyle(property, value string) {
	prev := n.style[property]
	if value == "" {
		delete(n.style, property)
	} else {
		n.style[property] = value
	}
	if property != anim.StyleAnimationName {
		return
	}
	switch {
	case value == "" && prev != "":
		n.clear()
	case value != "" && (value != prev || n.cleared):
		n.applied()
	}
}

// Style returns an inline style property.
func (n *Node) Style(property string) string { return n.style[property] }

func (n *Node) clear() {
	if n.cleared {
		return
	}
	n.cleared = true
	n.clearedAt = n.doc.reflows
}

// applied bumps the epoch unless the animation was cleared and re-applied
// without an intervening layout read, which the renderer treats as a
// continuation of the running animation.
func (n *Node) applied() {
	if n.cleared && n.doc.reflows == n.clearedAt {
		n.cleared = false
		return
	}
	n.cleared = false
	n.epoch++
}

// Epoch increments each time the node's animation restarts.
func (n *Node) Epoch() uint64 { return n.epoch }

// InsertAfter implements anim.Element.
func (n *Node) InsertAfter(id string) anim.Element {
	c := n.doc.newNode(id, "", "")
	parent := n.parent
	if parent == nil {
		n.adopt(c, len(n.children))
		return c
	}
	idx := len(parent.children)
	for i, sib := range parent.children {
		if sib == n {
			idx = i + 1
			break
		}
	}
	parent.adopt(c, idx)
	return c
}

// Append implements anim.Element.
func (n *Node) Append(class, text string) anim.Element {
	return n.AppendNode(class, text)
}

// AppendNode is Append returning the concrete node.
func (n *Node) AppendNode(class, text string) *Node {
	c := n.doc.newNode("", class, text)
	n.adopt(c, len(n.children))
	return c
}

func (n *Node) adopt(c *Node, idx int) {
	c.parent = n
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
	c.setAttached(n.attached)
}

// Remove implements anim.Element.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, sib := range siblings {
		if sib == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.setAttached(false)
}

func (n *Node) setAttached(v bool) {
	n.attached = v
	for _, c := range n.children {
		c.setAttached(v)
	}
}

// Attached reports whether the node is reachable from the document body.
func (n *Node) Attached() bool { return n.attached }

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

type listener struct{ fn func() }

// OnceFinished implements anim.Element. The returned func drops the
// registration if it has not fired yet.
func (n *Node) OnceFinished(fn func()) (cancel func()) {
	l := &listener{fn: fn}
	n.listeners = append(n.listeners, l)
	return func() {
		for i, cur := range n.listeners {
			if cur == l {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// PendingFinish reports how many one-shot listeners are waiting.
func (n *Node) PendingFinish() int { return len(n.listeners) }

// TakeFinish removes and returns the waiting listeners without calling them.
func (n *Node) TakeFinish() []func() {
	taken := make([]func(), len(n.listeners))
	for i, l := range n.listeners {
		taken[i] = l.fn
	}
	n.listeners = nil
	return taken
}

// Finish dispatches an "animation finished" event. Listeners registered
// while dispatching wait for the next event.
func (n *Node) Finish() {
	for _, fn := range n.TakeFinish() {
		fn()
	}
}
