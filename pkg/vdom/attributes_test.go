package vdom

import (
	"testing"

	"github.com/vango-dev/mwc/pkg/dom"
)

func TestEffectiveAttrsPresence(t *testing.T) {
	node := CustomElement("mwc-dialog",
		A("open", true),
		A("stacked", false),
		A("hide-actions", nil),
		A("heading", "Hi"),
		A("tabindex", 3),
		A("ratio", 1.5),
		A("_internal", "x"),
		A("raw", []byte("bytes")),
		A("complex", map[string]any{"a": 1}),
		Ref(dom.NewNodeRef()),
		On("closed", func() {}),
	)

	got := EffectiveAttrs(node)
	want := map[string]string{
		"open":     "",
		"heading":  "Hi",
		"tabindex": "3",
		"ratio":    "1.5",
		"raw":      "bytes",
	}

	if len(got) != len(want) {
		t.Fatalf("EffectiveAttrs() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attr %q = %q, want %q", k, got[k], v)
		}
	}
	for _, absent := range []string{"stacked", "hide-actions", "_internal", "_ref", "onclosed", "complex"} {
		if _, ok := got[absent]; ok {
			t.Errorf("attr %q should be absent", absent)
		}
	}
}

func TestEffectiveAttrsNonElement(t *testing.T) {
	if EffectiveAttrs(nil) != nil {
		t.Error("nil node")
	}
	if EffectiveAttrs(Text("x")) != nil {
		t.Error("text node")
	}
}

func TestEffectiveAttrsStringPointer(t *testing.T) {
	s := "ok"
	var nilS *string
	got := EffectiveAttrs(El("x-el", A("a", &s), A("b", nilS)))
	if got["a"] != "ok" {
		t.Errorf("a = %q", got["a"])
	}
	if _, ok := got["b"]; ok {
		t.Error("nil *string must be omitted")
	}
}

func TestDiffAttrs(t *testing.T) {
	prev := CustomElement("mwc-dialog", A("open", true), A("heading", "A"), A("stacked", true))
	next := CustomElement("mwc-dialog", A("heading", "B"), A("stacked", true), A("default-action", "ok"))

	patches := DiffAttrs(prev, next)
	want := []AttrPatch{
		{Op: AttrSet, Name: "default-action", Value: "ok"},
		{Op: AttrSet, Name: "heading", Value: "B"},
		{Op: AttrRemove, Name: "open"},
	}

	if len(patches) != len(want) {
		t.Fatalf("DiffAttrs() = %+v, want %+v", patches, want)
	}
	for i := range want {
		if patches[i] != want[i] {
			t.Errorf("patch[%d] = %+v, want %+v", i, patches[i], want[i])
		}
	}
}

func TestDiffAttrsNoChange(t *testing.T) {
	a := Div(Class("x"))
	b := Div(Class("x"))
	if p := DiffAttrs(a, b); len(p) != 0 {
		t.Errorf("DiffAttrs() = %+v, want none", p)
	}
}

func TestAttrOpString(t *testing.T) {
	if AttrSet.String() != "Set" || AttrRemove.String() != "Remove" || AttrOp(9).String() != "Unknown" {
		t.Error("AttrOp.String mismatch")
	}
}
