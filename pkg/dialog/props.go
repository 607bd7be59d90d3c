package dialog

import "github.com/vango-dev/mwc/pkg/vdom"

// Attribute names in the mwc-dialog vocabulary.
const (
	AttrOpen                  = "open"
	AttrHideActions           = "hide-actions"
	AttrStacked               = "stacked"
	AttrHeading               = "heading"
	AttrScrimClickAction      = "scrim-click-action"
	AttrEscapeKeyAction       = "escape-key-action"
	AttrDefaultAction         = "default-action"
	AttrActionAttribute       = "action-attribute"
	AttrInitialFocusAttribute = "initial-focus-attribute"
)

// Props configures a Dialog. A Props value is replaced as a whole on every
// update. Nil string fields and false flags leave their attribute off the
// element.
type Props struct {
	Open        bool
	HideActions bool
	Stacked     bool

	Heading *string

	// ScrimClickAction, EscapeKeyAction and DefaultAction name the action
	// reported when the dialog closes through the scrim, the escape key or
	// the default action.
	ScrimClickAction *string
	EscapeKeyAction  *string
	DefaultAction    *string

	// ActionAttribute and InitialFocusAttribute override the attribute
	// names the element looks for on its slotted content.
	ActionAttribute       *string
	InitialFocusAttribute *string

	OnOpening func()
	OnOpened  func()
	OnClosing func(action string)
	OnClosed  func(action string)

	// Children are rendered inside the element unchanged.
	Children []*vdom.VNode
}

// String returns a pointer to s, for the optional Props fields.
func String(s string) *string {
	return &s
}

// attrs returns the attribute arguments for the element.
func (p *Props) attrs() []vdom.Attr {
	return []vdom.Attr{
		vdom.BoolAttr(AttrOpen, p.Open),
		vdom.BoolAttr(AttrHideActions, p.HideActions),
		vdom.BoolAttr(AttrStacked, p.Stacked),
		vdom.OptAttr(AttrHeading, p.Heading),
		vdom.OptAttr(AttrScrimClickAction, p.ScrimClickAction),
		vdom.OptAttr(AttrEscapeKeyAction, p.EscapeKeyAction),
		vdom.OptAttr(AttrDefaultAction, p.DefaultAction),
		vdom.OptAttr(AttrActionAttribute, p.ActionAttribute),
		vdom.OptAttr(AttrInitialFocusAttribute, p.InitialFocusAttribute),
	}
}
