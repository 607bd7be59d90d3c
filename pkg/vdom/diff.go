package vdom

import "sort"

// AttrOp identifies an attribute operation.
type AttrOp uint8

const (
	AttrSet AttrOp = iota + 1
	AttrRemove
)

// String returns the string representation of the op.
func (op AttrOp) String() string {
	switch op {
	case AttrSet:
		return "Set"
	case AttrRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// AttrPatch is a single attribute change on one element.
type AttrPatch struct {
	Op    AttrOp
	Name  string
	Value string
}

// DiffAttrs compares the effective attributes of two renderings of the same
// element and returns the changes needed to go from prev to next, sorted by
// name for deterministic delivery.
func DiffAttrs(prev, next *VNode) []AttrPatch {
	before := EffectiveAttrs(prev)
	after := EffectiveAttrs(next)

	var patches []AttrPatch
	for name, value := range after {
		if old, ok := before[name]; !ok || old != value {
			patches = append(patches, AttrPatch{Op: AttrSet, Name: name, Value: value})
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			patches = append(patches, AttrPatch{Op: AttrRemove, Name: name})
		}
	}

	sort.Slice(patches, func(i, j int) bool {
		return patches[i].Name < patches[j].Name
	})
	return patches
}
