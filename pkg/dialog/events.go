package dialog

import "github.com/vango-dev/mwc/pkg/dom"

// Lifecycle event names fired by mwc-dialog.
const (
	EventOpening = "opening"
	EventOpened  = "opened"
	EventClosing = "closing"
	EventClosed  = "closed"
)

// actioner is a detail value exposing the action through a getter.
type actioner interface {
	Action() string
}

// ActionFromEvent extracts the action from a closing or closed event.
// The detail may be an object with a string "action" field or a value with
// an Action() getter. Any other shape yields "".
func ActionFromEvent(e dom.Event) string {
	action, _ := parseAction(e.Detail)
	return action
}

// parseAction reports whether detail had a recognizable action.
func parseAction(detail any) (string, bool) {
	switch d := detail.(type) {
	case map[string]any:
		s, ok := d["action"].(string)
		return s, ok
	case map[string]string:
		s, ok := d["action"]
		return s, ok
	case actioner:
		return d.Action(), true
	default:
		return "", false
	}
}
