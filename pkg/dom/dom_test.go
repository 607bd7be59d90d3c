package dom

import "testing"

func TestEventTargetDispatchOrder(t *testing.T) {
	var target EventTarget
	var got []string

	target.Add("opened", func(Event) { got = append(got, "a") })
	target.Add("opened", func(Event) { got = append(got, "b") })
	target.Add("closed", func(Event) { got = append(got, "x") })

	if n := target.Dispatch(Event{Type: "opened"}); n != 2 {
		t.Errorf("Dispatch() = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("order = %v, want [a b]", got)
	}
}

func TestListenerRemove(t *testing.T) {
	var target EventTarget
	calls := 0
	l := target.Add("closing", func(Event) { calls++ })

	l.Remove()
	l.Remove()

	target.Dispatch(Event{Type: "closing"})
	if calls != 0 {
		t.Errorf("calls = %d after Remove, want 0", calls)
	}
	if target.Count("closing") != 0 {
		t.Errorf("Count() = %d, want 0", target.Count("closing"))
	}
}

func TestNilListenerRemove(t *testing.T) {
	var l *Listener
	l.Remove()
	if l.Event() != "" {
		t.Error("nil listener should report empty event")
	}
}

func TestEventTargetFirstLastHooks(t *testing.T) {
	var firsts, lasts []string
	target := &EventTarget{
		OnFirst: func(e string) { firsts = append(firsts, e) },
		OnLast:  func(e string) { lasts = append(lasts, e) },
	}

	a := target.Add("opening", func(Event) {})
	b := target.Add("opening", func(Event) {})
	if len(firsts) != 1 {
		t.Fatalf("OnFirst called %d times, want 1", len(firsts))
	}

	a.Remove()
	if len(lasts) != 0 {
		t.Fatalf("OnLast called early: %v", lasts)
	}
	b.Remove()
	if len(lasts) != 1 || lasts[0] != "opening" {
		t.Errorf("lasts = %v, want [opening]", lasts)
	}
}

func TestDispatchDuringRemove(t *testing.T) {
	var target EventTarget
	var second *Listener
	calls := 0
	target.Add("closed", func(Event) {
		calls++
		second.Remove()
	})
	second = target.Add("closed", func(Event) { calls++ })

	target.Dispatch(Event{Type: "closed"})
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (snapshot dispatch)", calls)
	}
	target.Dispatch(Event{Type: "closed"})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

type stubNode struct{ Node }

func TestNodeRef(t *testing.T) {
	var nilRef *NodeRef
	if _, ok := nilRef.Node(); ok {
		t.Error("nil ref should not be set")
	}

	ref := NewNodeRef()
	if ref.IsSet() {
		t.Error("new ref should not be set")
	}

	n := stubNode{}
	ref.Set(n)
	got, ok := ref.Node()
	if !ok || got != n {
		t.Errorf("Node() = %v, %v", got, ok)
	}

	ref.Clear()
	if ref.IsSet() {
		t.Error("ref should be cleared")
	}
}
