// Package dialog binds the mwc-dialog web component.
//
// A Dialog renders an <mwc-dialog> element from typed Props, forwards the
// element's opening, opened, closing and closed events to callbacks, and can
// be driven imperatively through a Handle:
//
//	h := dialog.NewHandle()
//	d := dialog.New(dialog.Props{
//		Heading:   dialog.String("Discard draft?"),
//		OnClosed:  func(action string) { log.Println("closed with", action) },
//		Children: []*vdom.VNode{
//			vdom.Text("This cannot be undone."),
//			dialog.Action(dialog.Primary, "discard", vdom.Button("Discard")),
//			dialog.Action(dialog.Secondary, "cancel", vdom.Button("Cancel")),
//		},
//	}, h)
//
//	// after the dialog is mounted:
//	if err := h.Show(ctx); err != nil { ... }
//
// Handle methods fail with ErrUseBeforeMount or ErrUseAfterUnmount instead of
// reaching a node that does not exist.
package dialog
