// Package demo is the page served by `mwc serve`: a button pair that opens
// an mwc-dialog through its open attribute and through its handle, and a
// status line that reflects the dialog's lifecycle.
package demo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/mwc/pkg/dialog"
	"github.com/vango-dev/mwc/pkg/dom"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// Styles renders the status line from its data attributes, since live
// updates only patch attributes.
const Styles = `.status::after {
  content: "state: " attr(data-state) " / last action: " attr(data-last-action);
}`

// Dialog states shown on the status line.
const (
	StateClosed  = "closed"
	StateOpening = "opening"
	StateOpen    = "open"
	StateClosing = "closing"
)

// App is the demo root component. Each live session gets its own App.
type App struct {
	handle *dialog.Handle
	dlg    *dialog.Dialog
	status *dom.NodeRef
	logger *slog.Logger

	mu         sync.Mutex
	state      string
	lastAction string
}

// New creates the demo page.
func New() *App {
	a := &App{
		handle: dialog.NewHandle(),
		status: dom.NewNodeRef(),
		logger: slog.Default().With("component", "demo"),
		state:  StateClosed,
	}
	a.dlg = dialog.New(a.props(false), a.handle)
	return a
}

func (a *App) props(open bool) dialog.Props {
	return dialog.Props{
		Open:             open,
		Heading:          dialog.String("Discard draft?"),
		ScrimClickAction: dialog.String("cancel"),
		EscapeKeyAction:  dialog.String("cancel"),
		OnOpening:        func() { a.setState(StateOpening, "") },
		OnOpened:         func() { a.setState(StateOpen, "") },
		OnClosing:        func(string) { a.setState(StateClosing, "") },
		OnClosed:         a.closed,
		Children: []*vdom.VNode{
			vdom.P("Your unsaved changes will be lost."),
			dialog.Action(dialog.Secondary, "cancel", vdom.Button("Cancel")),
			dialog.Action(dialog.Primary, "discard", vdom.Button("Discard")),
		},
	}
}

func (a *App) setState(state, action string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = state
	if action != "" || state == StateClosed {
		a.lastAction = action
	}
}

// closed keeps the open prop in step with the element, which closed itself.
func (a *App) closed(action string) {
	a.setState(StateClosed, action)
	a.dlg.SetProps(a.props(false))
	a.logger.Debug("dialog closed", "action", action)
}

// Open opens the dialog through its open attribute.
func (a *App) Open() {
	a.dlg.SetProps(a.props(true))
}

// Show opens the dialog through its handle.
func (a *App) Show() {
	if err := a.handle.Show(context.Background()); err != nil {
		a.logger.Warn("show failed", "error", err)
	}
}

// State returns the dialog state and the last close action.
func (a *App) State() (state, lastAction string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.lastAction
}

// Handle returns the dialog handle.
func (a *App) Handle() *dialog.Handle {
	return a.handle
}

// Render implements vango.Component.
func (a *App) Render() *vdom.VNode {
	state, last := a.State()
	return vdom.Main(
		vdom.H2("mwc-dialog"),
		vdom.Button(vdom.ID("open"), vdom.OnClick(a.Open), "Open (attribute)"),
		vdom.Button(vdom.ID("show"), vdom.OnClick(a.Show), "Open (handle)"),
		vdom.P(
			vdom.Ref(a.status),
			vdom.Class("status"),
			vdom.Data("state", state),
			vdom.Data("last-action", last),
		),
		a.dlg,
	)
}
