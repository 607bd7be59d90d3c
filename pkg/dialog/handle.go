package dialog

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/vango"
)

// Handle reaches a dialog from outside its owner. It refers to the dialog
// without owning it: New points it at a dialog and unmounting detaches it.
//
// The zero value is not usable; create handles with NewHandle. A nil *Handle
// behaves like one that was never attached.
type Handle struct {
	ref *vango.Ref[*Dialog]

	// owner is the dialog New last gave the handle to.
	owner atomic.Pointer[Dialog]
}

// NewHandle creates an unattached handle.
func NewHandle() *Handle {
	return &Handle{ref: vango.NewRef[*Dialog]()}
}

// Dialog returns the attached dialog.
func (h *Handle) Dialog() (*Dialog, bool) {
	if h == nil || h.ref == nil {
		return nil, false
	}
	return h.ref.Get()
}

// Focus moves focus into the dialog.
func (h *Handle) Focus(ctx context.Context) error { return h.call(ctx, "focus") }

// Blur removes focus from the dialog.
func (h *Handle) Blur(ctx context.Context) error { return h.call(ctx, "blur") }

// Show opens the dialog.
func (h *Handle) Show(ctx context.Context) error { return h.call(ctx, "show") }

// Close closes the dialog.
func (h *Handle) Close(ctx context.Context) error { return h.call(ctx, "close") }

// call resolves handle, dialog and node in turn and invokes method on the
// node.
func (h *Handle) call(ctx context.Context, method string) error {
	if h == nil || h.ref == nil {
		return useBeforeMount(method)
	}
	d, ok := h.ref.Get()
	if !ok {
		if h.ref.Released() {
			return useAfterUnmount(method)
		}
		return useBeforeMount(method)
	}

	node, err := d.node(method)
	if err != nil {
		return err
	}
	if err := node.Call(ctx, method); err != nil {
		if errors.Is(err, dom.ErrDetached) {
			return useAfterUnmount(method)
		}
		return callFailed(method, err)
	}
	return nil
}
