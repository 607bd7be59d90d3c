package vdom

import (
	"reflect"
	"strconv"
)

// EffectiveAttrs returns the string attributes that should be present on
// the native element for the given node.
//
// Internal props, event handlers and the reconciliation key are skipped.
// Booleans are presence-style for every attribute name: true yields the
// attribute with an empty value, false omits it. nil values are omitted.
//
// It intentionally omits `data-hid`, which is managed separately via node.HID.
func EffectiveAttrs(node *VNode) map[string]string {
	if node == nil || node.Kind != KindElement || node.Props == nil {
		return nil
	}

	attrs := make(map[string]string, len(node.Props))
	for key, value := range node.Props {
		if value == nil || key == "key" || key == "" {
			continue
		}
		if key[0] == '_' || isEventHandler(key) {
			continue
		}
		if s, ok := attrValueToString(value); ok {
			attrs[key] = s
		}
	}
	return attrs
}

func attrValueToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case bool:
		return "", v
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		// Avoid encoding complex structs/maps as attributes unintentionally.
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
		return "", false
	}
}
