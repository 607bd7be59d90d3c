package dialog

import "github.com/vango-dev/mwc/pkg/vdom"

// ActionSlot is a named slot of mwc-dialog that holds action buttons.
type ActionSlot string

const (
	Primary   ActionSlot = "primaryAction"
	Secondary ActionSlot = "secondaryAction"
)

// actionAttr is the default attribute mwc-dialog reads an action from.
// Props.ActionAttribute renames it; ActionWith supports that case.
const actionAttr = "dialogAction"

// Action renders a wrapper placed in slot. Clicking anything inside it
// closes the dialog with action.
func Action(slot ActionSlot, action string, children ...any) *vdom.VNode {
	return ActionWith(actionAttr, slot, action, children...)
}

// ActionWith is Action for dialogs whose ActionAttribute is attr.
func ActionWith(attr string, slot ActionSlot, action string, children ...any) *vdom.VNode {
	args := make([]any, 0, len(children)+2)
	args = append(args, vdom.Slot(string(slot)), vdom.A(attr, action))
	args = append(args, children...)
	return vdom.Span(args...)
}
