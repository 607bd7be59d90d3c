package dialog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	mwcerrors "github.com/vango-dev/mwc/internal/errors"
	"github.com/vango-dev/mwc/pkg/dom/domtest"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/vango"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// mount mounts d on a fresh in-memory document and returns the dialog node.
func mount(t *testing.T, d *Dialog) (*vango.Instance, *domtest.Document, *domtest.Node) {
	t.Helper()
	doc := domtest.NewDocument()
	inst, err := vango.Mount(d, doc)
	if err != nil {
		t.Fatalf("Mount error: %v", err)
	}
	node, ok := doc.ByTag(Tag)
	if !ok {
		t.Fatal("no mwc-dialog node resolved")
	}
	return inst, doc, node
}

func TestNewEnsuresDefinition(t *testing.T) {
	New(Props{}, nil)
	if !element.Default().IsLoaded(Tag) {
		t.Fatalf("%s not loaded after New", Tag)
	}
}

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  map[string]string
	}{
		{"empty props emit nothing", Props{}, map[string]string{}},
		{
			"flags are presence-style",
			Props{Open: true, HideActions: true, Stacked: true},
			map[string]string{"open": "", "hide-actions": "", "stacked": ""},
		},
		{
			"false flags are absent",
			Props{Open: false, Stacked: false, Heading: String("Hi")},
			map[string]string{"heading": "Hi"},
		},
		{
			"valued attributes use kebab-case",
			Props{
				ScrimClickAction:      String("dismiss"),
				EscapeKeyAction:       String("esc"),
				DefaultAction:         String("ok"),
				ActionAttribute:       String("data-action"),
				InitialFocusAttribute: String("data-focus"),
			},
			map[string]string{
				"scrim-click-action":      "dismiss",
				"escape-key-action":       "esc",
				"default-action":          "ok",
				"action-attribute":        "data-action",
				"initial-focus-attribute": "data-focus",
			},
		},
		{"empty string is still present", Props{Heading: String("")}, map[string]string{"heading": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.props, nil).Render()
			if v.Tag != Tag {
				t.Fatalf("Tag = %q, want %q", v.Tag, Tag)
			}
			got := vdom.EffectiveAttrs(v)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("attrs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderChildrenAndRef(t *testing.T) {
	body := vdom.P(vdom.Text("Discard draft?"))
	ok := Action(Primary, "ok", vdom.Button(vdom.Text("OK")))
	v := New(Props{Children: []*vdom.VNode{body, ok}}, nil).Render()

	if len(v.Children) != 2 || v.Children[0] != body || v.Children[1] != ok {
		t.Fatalf("children not embedded unchanged: %+v", v.Children)
	}
	if v.NodeRef() == nil {
		t.Fatal("rendered node has no capture point")
	}
	if !v.NeedsHID() {
		t.Fatal("rendered node must be addressable")
	}
}

func TestShowThenClose(t *testing.T) {
	ctx := context.Background()
	h := NewHandle()
	d := New(Props{}, h)

	if err := h.Show(ctx); !errors.Is(err, ErrUseBeforeMount) {
		t.Fatalf("Show before mount err = %v, want ErrUseBeforeMount", err)
	}

	_, _, node := mount(t, d)
	if len(node.Calls()) != 0 {
		t.Fatalf("calls before any handle use: %v", node.Calls())
	}
	if err := h.Show(ctx); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	if err := h.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got, want := node.Calls(), []string{"show", "close"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestFocusAndBlur(t *testing.T) {
	ctx := context.Background()
	h := NewHandle()
	_, _, node := mount(t, New(Props{}, h))

	if err := h.Focus(ctx); err != nil {
		t.Fatal(err)
	}
	if err := h.Blur(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := node.Calls(), []string{"focus", "blur"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestFocusBeforeMount(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		handle func() *Handle
	}{
		{"nil handle", func() *Handle { return nil }},
		{"zero handle", func() *Handle { return &Handle{} }},
		{"unattached handle", NewHandle},
		{"attached, not mounted", func() *Handle {
			h := NewHandle()
			New(Props{}, h)
			return h
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.handle().Focus(ctx)
			if !errors.Is(err, ErrUseBeforeMount) {
				t.Fatalf("err = %v, want ErrUseBeforeMount", err)
			}
			if code := mwcerrors.Code(err); code != "M101" {
				t.Errorf("code = %q, want M101", code)
			}
		})
	}
}

func TestUseAfterUnmount(t *testing.T) {
	ctx := context.Background()
	h := NewHandle()
	d := New(Props{}, h)
	inst, _, node := mount(t, d)
	inst.Unmount()

	err := h.Show(ctx)
	if !errors.Is(err, ErrUseAfterUnmount) {
		t.Fatalf("err = %v, want ErrUseAfterUnmount", err)
	}
	if code := mwcerrors.Code(err); code != "M102" {
		t.Errorf("code = %q, want M102", code)
	}
	if _, ok := h.Dialog(); ok {
		t.Error("handle still attached after unmount")
	}
	if len(node.Calls()) != 0 {
		t.Errorf("native calls after unmount: %v", node.Calls())
	}

	// A second handle holding the dialog directly sees the dialog state.
	if _, err := d.node("show"); !errors.Is(err, ErrUseAfterUnmount) {
		t.Errorf("dialog node err = %v", err)
	}
}

func TestCallFailure(t *testing.T) {
	h := NewHandle()
	_, _, node := mount(t, New(Props{}, h))
	boom := errors.New("show is not a function")
	node.CallErr = boom

	err := h.Show(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped cause", err)
	}
	if code := mwcerrors.Code(err); code != "M103" {
		t.Errorf("code = %q, want M103", code)
	}
}

func TestDetachedNodeIsAfterUnmount(t *testing.T) {
	h := NewHandle()
	_, _, node := mount(t, New(Props{}, h))
	node.Detach()
	if err := h.Close(context.Background()); !errors.Is(err, ErrUseAfterUnmount) {
		t.Fatalf("err = %v, want ErrUseAfterUnmount", err)
	}
}

type recorder struct {
	opening, opened int
	closing, closed []string
}

func (r *recorder) props() Props {
	return Props{
		OnOpening: func() { r.opening++ },
		OnOpened:  func() { r.opened++ },
		OnClosing: func(a string) { r.closing = append(r.closing, a) },
		OnClosed:  func(a string) { r.closed = append(r.closed, a) },
	}
}

type detailWithGetter struct{ action string }

func (d detailWithGetter) Action() string { return d.action }

func TestLifecycleEvents(t *testing.T) {
	rec := &recorder{}
	_, _, node := mount(t, New(rec.props(), nil))

	node.Fire(EventOpening, nil)
	node.Fire(EventOpened, nil)
	node.Fire(EventOpened, map[string]any{"unrelated": true})
	node.Fire(EventClosing, map[string]any{"action": "ok"})
	node.Fire(EventClosed, detailWithGetter{action: "cancel"})

	if rec.opening != 1 {
		t.Errorf("opening = %d, want 1", rec.opening)
	}
	if rec.opened != 2 {
		t.Errorf("opened = %d, want 2", rec.opened)
	}
	if !reflect.DeepEqual(rec.closing, []string{"ok"}) {
		t.Errorf("closing = %v, want [ok]", rec.closing)
	}
	if !reflect.DeepEqual(rec.closed, []string{"cancel"}) {
		t.Errorf("closed = %v, want [cancel]", rec.closed)
	}
}

func TestMissingEventPayload(t *testing.T) {
	rec := &recorder{}
	_, _, node := mount(t, New(rec.props(), nil))

	node.Fire(EventClosing, nil)
	node.Fire(EventClosing, "ok")
	node.Fire(EventClosed, map[string]any{"action": 42})

	if !reflect.DeepEqual(rec.closing, []string{"", ""}) {
		t.Errorf("closing = %q, want two empty actions", rec.closing)
	}
	if !reflect.DeepEqual(rec.closed, []string{""}) {
		t.Errorf("closed = %q, want one empty action", rec.closed)
	}
}

func TestNilCallbacksAreSkipped(t *testing.T) {
	_, _, node := mount(t, New(Props{}, nil))
	for _, ev := range []string{EventOpening, EventOpened, EventClosing, EventClosed} {
		if n := node.Fire(ev, map[string]any{"action": "x"}); n != 1 {
			t.Errorf("%s reached %d listeners, want 1", ev, n)
		}
	}
}

func TestUnmountRemountNoDuplicates(t *testing.T) {
	rec := &recorder{}
	inst, doc, _ := mount(t, New(rec.props(), nil))

	inst.Unmount()
	inst.Unmount()
	if err := inst.Remount(); err != nil {
		t.Fatalf("Remount error: %v", err)
	}

	node, ok := doc.ByTag(Tag)
	if !ok {
		t.Fatal("no node after remount")
	}
	node.Fire(EventClosing, map[string]any{"action": "ok"})
	if !reflect.DeepEqual(rec.closing, []string{"ok"}) {
		t.Errorf("closing = %v, want exactly one callback", rec.closing)
	}
	if n := node.Listeners(EventClosing); n != 1 {
		t.Errorf("closing listeners = %d, want 1", n)
	}
}

func TestRepeatedMountedDoesNotDuplicate(t *testing.T) {
	rec := &recorder{}
	d := New(rec.props(), nil)
	node := domtest.NewNode(Tag, "h1")
	d.ref.Set(node)

	d.Mounted(true)
	d.Mounted(true)
	d.Mounted(false)
	for _, ev := range []string{EventOpening, EventOpened, EventClosing, EventClosed} {
		if n := node.Listeners(ev); n != 1 {
			t.Errorf("%s listeners = %d, want 1", ev, n)
		}
	}

	d.Unmounted()
	for _, ev := range []string{EventOpening, EventOpened, EventClosing, EventClosed} {
		if n := node.Listeners(ev); n != 0 {
			t.Errorf("%s listeners after unmount = %d, want 0", ev, n)
		}
	}
	node.Fire(EventOpened, nil)
	if rec.opened != 0 {
		t.Error("callback ran after unmount")
	}
}

func TestUnmountedBeforeMountIsSafe(t *testing.T) {
	d := New(Props{}, NewHandle())
	d.Unmounted()
	d.Unmounted()
}

func TestListenersFollowReplacedNode(t *testing.T) {
	rec := &recorder{}
	d := New(rec.props(), nil)
	first := domtest.NewNode(Tag, "h1")
	d.ref.Set(first)
	d.Mounted(true)

	second := domtest.NewNode(Tag, "h1")
	d.ref.Set(second)
	d.Mounted(false)

	if first.Listeners(EventOpened) != 0 || second.Listeners(EventOpened) != 1 {
		t.Fatalf("listeners: first %d, second %d", first.Listeners(EventOpened), second.Listeners(EventOpened))
	}
	second.Fire(EventOpened, nil)
	if rec.opened != 1 {
		t.Errorf("opened = %d, want 1", rec.opened)
	}
}

func TestUpdateReplacesProps(t *testing.T) {
	var got []string
	inst, _, node := mount(t, New(Props{Heading: String("One"), Stacked: true}, nil))

	changed, err := inst.Update(Props{
		Open:      true,
		OnClosing: func(a string) { got = append(got, a) },
	})
	if err != nil || !changed {
		t.Fatalf("Update = %v, %v", changed, err)
	}
	if _, ok := node.Attr("open"); !ok {
		t.Error("open not set after update")
	}
	if _, ok := node.Attr("heading"); ok {
		t.Error("heading should be removed when the new props omit it")
	}
	if _, ok := node.Attr("stacked"); ok {
		t.Error("stacked should be removed when the new props omit it")
	}

	node.Fire(EventClosing, map[string]any{"action": "done"})
	if !reflect.DeepEqual(got, []string{"done"}) {
		t.Errorf("new callback not used: %v", got)
	}
	if n := node.Listeners(EventClosing); n != 1 {
		t.Errorf("closing listeners after update = %d, want 1", n)
	}
}

func TestUpdateAcceptedTypes(t *testing.T) {
	d := New(Props{}, nil)
	if !d.Update(&Props{Open: true}) || !d.Props().Open {
		t.Error("*Props update not applied")
	}
	if !d.SetProps(Props{}) || d.Props().Open {
		t.Error("SetProps should replace props wholesale")
	}
	if d.Update("open") {
		t.Error("unexpected props type should not request a render")
	}
	if d.Update((*Props)(nil)) {
		t.Error("nil *Props should not request a render")
	}
}

func TestActionFromEvent(t *testing.T) {
	tests := []struct {
		name   string
		detail any
		want   string
	}{
		{"object", map[string]any{"action": "ok"}, "ok"},
		{"string map", map[string]string{"action": "cancel"}, "cancel"},
		{"getter", detailWithGetter{action: "close"}, "close"},
		{"nil", nil, ""},
		{"no action field", map[string]any{"reason": "x"}, ""},
		{"non-string action", map[string]any{"action": 1.0}, ""},
		{"scalar", "ok", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domEvent(EventClosed, tt.detail)
			if got := ActionFromEvent(e); got != tt.want {
				t.Errorf("ActionFromEvent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionSlots(t *testing.T) {
	v := Action(Secondary, "cancel", vdom.Text("Cancel"))
	got := vdom.EffectiveAttrs(v)
	want := map[string]string{"slot": "secondaryAction", "dialogAction": "cancel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("attrs = %v, want %v", got, want)
	}
	if len(v.Children) != 1 || v.Children[0].Text != "Cancel" {
		t.Errorf("children = %+v", v.Children)
	}

	custom := ActionWith("data-action", Primary, "ok")
	if a := vdom.EffectiveAttrs(custom); a["data-action"] != "ok" || a["slot"] != "primaryAction" {
		t.Errorf("custom attrs = %v", a)
	}
}

func TestMountedWithoutNodeStaysUnmounted(t *testing.T) {
	h := NewHandle()
	d := New(Props{}, h)

	d.Mounted(true)
	if d.state != stateCreated {
		t.Errorf("state = %s, want created", d.state)
	}
	if err := h.Show(context.Background()); !errors.Is(err, ErrUseBeforeMount) {
		t.Errorf("Show err = %v, want ErrUseBeforeMount", err)
	}
}

func TestRemountKeepsHandleOfNewerDialog(t *testing.T) {
	ctx := context.Background()
	h := NewHandle()
	old := New(Props{}, h)
	inst, _, oldNode := mount(t, old)
	inst.Unmount()

	newer := New(Props{}, h)
	_, _, newNode := mount(t, newer)

	if err := inst.Remount(); err != nil {
		t.Fatalf("Remount error: %v", err)
	}
	if got, _ := h.Dialog(); got != newer {
		t.Fatal("remounting the old dialog took the handle back")
	}
	if err := h.Show(ctx); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	if len(newNode.Calls()) != 1 || len(oldNode.Calls()) != 0 {
		t.Errorf("calls: newer %v, old %v", newNode.Calls(), oldNode.Calls())
	}
}

func TestRemountReclaimsOwnHandle(t *testing.T) {
	h := NewHandle()
	d := New(Props{}, h)
	inst, _, _ := mount(t, d)
	inst.Unmount()

	if err := inst.Remount(); err != nil {
		t.Fatalf("Remount error: %v", err)
	}
	if got, ok := h.Dialog(); !ok || got != d {
		t.Fatal("handle not reattached after remount")
	}
	if err := h.Show(context.Background()); err != nil {
		t.Errorf("Show error: %v", err)
	}
}

func TestNestedInFuncComponent(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	h := NewHandle()
	d := New(rec.props(), h)

	doc := domtest.NewDocument()
	inst, err := vango.Mount(vango.FuncComponent(func() *vdom.VNode { return vdom.Div(d) }), doc)
	if err != nil {
		t.Fatalf("Mount error: %v", err)
	}
	node, ok := doc.ByTag(Tag)
	if !ok {
		t.Fatal("no mwc-dialog node resolved")
	}

	if err := h.Show(ctx); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	node.Fire(EventClosed, map[string]any{"action": "ok"})
	if !reflect.DeepEqual(rec.closed, []string{"ok"}) {
		t.Errorf("closed = %v, want [ok]", rec.closed)
	}

	inst.Unmount()
	if err := h.Show(ctx); !errors.Is(err, ErrUseAfterUnmount) {
		t.Errorf("Show after unmount err = %v, want ErrUseAfterUnmount", err)
	}
}
