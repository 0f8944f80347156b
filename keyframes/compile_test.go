// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyframes

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestCompileGrammar(t *testing.T) {
	d := New("hot-bounce").
		Set(0, Transform(Translate(0, 0))).
		Set(100, Transform(TranslateRotate(12.345, -0.04, 3)), Opacity(0))

	got := Compile(d)
	want := "@keyframes hot-bounce { 0.0% { transform:translate(0.0px,0.0px); } " +
		"100.0% { transform:translate(12.3px,0.0px) rotate(3.0deg); opacity:0; } }"
	if got != want {
		t.Fatalf("unexpected rule text\n got: %s\nwant: %s", got, want)
	}
}

func TestSetKeepsOffsetsSortedAndMerges(t *testing.T) {
	d := New("spark")
	for i := 0; i <= 3; i++ {
		d.Set(float64(i)*100/3, Transform(Translate(float64(i), 0)))
	}
	d.Set(45.1, Opacity(1))
	d.Set(99.9, Opacity(0))
	d.Set(100, Opacity(0.5))

	prev := -1.0
	for _, f := range d.Frames {
		if f.Offset < prev {
			t.Fatalf("frames out of order: %v after %v", f.Offset, prev)
		}
		prev = f.Offset
	}
	last := d.Frames[len(d.Frames)-1]
	if len(last.Props) != 2 {
		t.Fatalf("expected merged props at 100%%, got %+v", last.Props)
	}
	if d.Len() != 6 {
		t.Fatalf("expected 6 frames, got %d", d.Len())
	}

	d.Set(100.04, Opacity(0.2))
	if d.Len() != 6 {
		t.Fatalf("offset rendering to 100.0%% should reuse the frame")
	}
	if v := d.Frames[5].Props[1].Value; v != "0.2" {
		t.Fatalf("expected overwritten opacity, got %q", v)
	}
}

func TestInstallBatchSingleBlockRegardlessOfCount(t *testing.T) {
	for _, k := range []int{1, 50, 200} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			store := NewStore()
			batch := NewBatch(k)
			for i := 0; i < k; i++ {
				d := New(fmt.Sprintf("hot-spark-%d", i)).
					Set(0, Transform(Translate(float64(i), 0))).
					Set(100, Opacity(0))
				batch.Add(Compile(d))
			}
			batch.Install(store, "particlestyle-hot-bounce")

			if store.Calls() != 1 {
				t.Fatalf("expected one installer call, got %d", store.Calls())
			}
			if store.Len() != 1 {
				t.Fatalf("expected one installed block, got %d", store.Len())
			}
			text, _ := store.Rule("particlestyle-hot-bounce")
			if n := strings.Count(text, "@keyframes"); n != k {
				t.Fatalf("expected %d rule bodies, got %d", k, n)
			}
			descs, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(descs) != k {
				t.Fatalf("parsed %d descriptors, want %d", len(descs), k)
			}
		})
	}
}

func TestStoreReplacesByKey(t *testing.T) {
	store := NewStore()
	store.InstallOrReplace("cold-shake", "@keyframes cold-shake { 0.0% { opacity:1; } }")
	store.InstallOrReplace("cold-shake", "@keyframes cold-shake { 0.0% { opacity:0; } }")

	if store.Len() != 1 {
		t.Fatalf("expected a single block, got %d", store.Len())
	}
	if got := store.Installs("cold-shake"); got != 2 {
		t.Fatalf("expected 2 installs, got %d", got)
	}
	text, ok := store.Rule("cold-shake")
	if !ok || !strings.Contains(text, "opacity:0") {
		t.Fatalf("last writer should win, got %q", text)
	}
	v := store.Version()
	store.Remove("cold-shake")
	if store.Len() != 0 || store.Version() == v {
		t.Fatalf("remove should drop the block and bump the version")
	}
}

func TestParseCompiledRule(t *testing.T) {
	d := New("cold-snowflake-3").
		Set(0, Transform(TranslateRotate(0, 0, 0))).
		Set(7.5, Transform(TranslateRotate(40.2, 27.1, 0)), Opacity(1)).
		Set(16.5, Transform(TranslateRotate(40.2, 307.1, 360)), Opacity(0))

	descs, err := Parse(Compile(d))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(descs) != 1 || descs[0].Name != d.Name || descs[0].Len() != 3 {
		t.Fatalf("unexpected parse result %+v", descs)
	}
	m, err := ParseTransform(descs[0].Frames[2].Props[0].Value)
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	if m.X != 40.2 || m.Y != 307.1 || m.Rotate != 360 {
		t.Fatalf("unexpected motion %+v", m)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, text := range []string{
		"@media screen { }",
		"@keyframes { 0% { opacity:1; } }",
		"@keyframes a { 0% { opacity:1; }",
		"@keyframes a { half { opacity:1; } }",
	} {
		if _, err := Parse(text); !errors.Is(err, ErrMalformedRule) {
			t.Fatalf("expected ErrMalformedRule for %q, got %v", text, err)
		}
	}
	if _, err := ParseTransform("scale(2)"); !errors.Is(err, ErrMalformedRule) {
		t.Fatalf("expected ErrMalformedRule for scale, got %v", err)
	}
}

func TestCompileIndentedParsesBack(t *testing.T) {
	d := New("drift").
		Set(0, Transform(TranslateRotate(1, 2, 3)), Opacity(0)).
		Set(50, Opacity(1))
	text := CompileIndented(d)
	if strings.Count(text, "\n") != 4 {
		t.Fatalf("expected one line per frame plus braces, got %q", text)
	}
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if Compile(parsed[0]) != Compile(d) {
		t.Fatalf("indented form changed the rule:\n%s\n%s", Compile(parsed[0]), Compile(d))
	}
}

func TestStoreInstallRacesRemove(t *testing.T) {
	store := NewStore()
	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			store.InstallOrReplace("particlestyle-cold", fmt.Sprintf("@keyframes f-%d { 0.0%% { opacity:1; } }", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			store.Remove("particlestyle-cold")
		}
	}()
	wg.Wait()

	if store.Calls() != rounds {
		t.Fatalf("expected %d installer calls, got %d", rounds, store.Calls())
	}
	text, ok := store.Rule("particlestyle-cold")
	if ok != (store.Installs("particlestyle-cold") > 0) {
		t.Fatalf("rule presence and install count disagree: ok=%v installs=%d", ok, store.Installs("particlestyle-cold"))
	}
	if ok && !strings.HasPrefix(text, "@keyframes f-") {
		t.Fatalf("unexpected surviving block %q", text)
	}

	store.InstallOrReplace("particlestyle-cold", "@keyframes final { 0.0% { opacity:0; } }")
	if text, ok := store.Rule("particlestyle-cold"); !ok || !strings.Contains(text, "final") {
		t.Fatalf("last writer should win after the churn, got %q", text)
	}
}
