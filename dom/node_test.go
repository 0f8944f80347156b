// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"testing"

	"github.com/framegrace/hotcold/anim"
)

func TestRestartRequiresLayoutRead(t *testing.T) {
	doc := NewDocument(640)
	el := doc.Body().AppendNode("guess", "42")

	el.AddClass("hot-bounce")
	first := el.Epoch()

	el.RemoveClass("hot-bounce")
	el.AddClass("hot-bounce")
	if el.Epoch() != first {
		t.Fatalf("toggle without reflow should continue the running animation")
	}

	el.RemoveClass("hot-bounce")
	el.ReadLayout()
	el.AddClass("hot-bounce")
	if el.Epoch() != first+1 {
		t.Fatalf("toggle with reflow should restart, epoch %d -> %d", first, el.Epoch())
	}
	if doc.Reflows() != 1 {
		t.Fatalf("expected one reflow, got %d", doc.Reflows())
	}
	if el.ClassAdds("hot-bounce") != 3 || el.ClassRemoves("hot-bounce") != 2 {
		t.Fatalf("unexpected toggle counts %d/%d", el.ClassAdds("hot-bounce"), el.ClassRemoves("hot-bounce"))
	}
}

func TestAnimationNameRestart(t *testing.T) {
	doc := NewDocument(640)
	n := doc.Body().AppendNode("hot-spark", "*")

	n.SetStyle(anim.StyleAnimationName, "hot-spark-0")
	e := n.Epoch()
	n.SetStyle(anim.StyleAnimationName, "hot-spark-0")
	if n.Epoch() != e {
		t.Fatalf("re-setting the same name should not restart")
	}
	n.SetStyle(anim.StyleAnimationName, "")
	n.ReadLayout()
	n.SetStyle(anim.StyleAnimationName, "hot-spark-0")
	if n.Epoch() != e+1 {
		t.Fatalf("expected restart after clear + reflow")
	}
}

func TestInsertAfterAndRemove(t *testing.T) {
	doc := NewDocument(320)
	el := doc.Body().AppendNode("guess", "7")
	tail := doc.Body().AppendNode("footer", "")

	container := el.InsertAfter("particlecontainer-cold-shake")
	for i := 0; i < 5; i++ {
		container.Append("cold-snowflake", "❄")
	}
	children := doc.Body().Children()
	if len(children) != 3 || children[1].ID() != "particlecontainer-cold-shake" || children[2] != tail {
		t.Fatalf("container should sit right after the element")
	}
	if doc.Count("cold-snowflake") != 5 {
		t.Fatalf("expected 5 attached particles, got %d", doc.Count("cold-snowflake"))
	}
	if w := children[1].Children()[0].Width(); w != 320 {
		t.Fatalf("particles should inherit layout width, got %v", w)
	}

	container.Remove()
	if doc.Count("cold-snowflake") != 0 {
		t.Fatalf("expected no residual particles")
	}
	if doc.FindByID("particlecontainer-cold-shake") != nil {
		t.Fatalf("container still attached")
	}
}

func TestFinishIsOneShot(t *testing.T) {
	doc := NewDocument(100)
	n := doc.Body().AppendNode("", "")
	calls := 0
	var rearm func()
	rearm = func() {
		calls++
		n.OnceFinished(rearm)
	}
	n.OnceFinished(rearm)

	n.Finish()
	if calls != 1 || n.PendingFinish() != 1 {
		t.Fatalf("listener should run once and re-arm, calls=%d pending=%d", calls, n.PendingFinish())
	}
	taken := n.TakeFinish()
	if len(taken) != 1 || n.PendingFinish() != 0 {
		t.Fatalf("TakeFinish should drain the listeners")
	}
	n.Finish()
	if calls != 1 {
		t.Fatalf("no listener should remain after TakeFinish")
	}
}

func TestOnceFinishedCancel(t *testing.T) {
	doc := NewDocument(100)
	n := doc.Body().AppendNode("", "")
	fired := ""
	cancelA := n.OnceFinished(func() { fired += "a" })
	n.OnceFinished(func() { fired += "b" })

	cancelA()
	cancelA()
	if n.PendingFinish() != 1 {
		t.Fatalf("cancel should drop only its own listener, pending=%d", n.PendingFinish())
	}
	n.Finish()
	if fired != "b" {
		t.Fatalf("cancelled listener fired: %q", fired)
	}

	cancelC := n.OnceFinished(func() { fired += "c" })
	n.Finish()
	cancelC()
	if fired != "bc" || n.PendingFinish() != 0 {
		t.Fatalf("cancel after firing must be a no-op, fired=%q pending=%d", fired, n.PendingFinish())
	}
}
