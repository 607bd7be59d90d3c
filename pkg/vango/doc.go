// Package vango is the host runtime that drives component lifecycles.
//
// A component renders to a vdom tree. Mount renders it, assigns hydration
// IDs, resolves every addressable element to a native node through a
// Document, fills ref capture points, binds declarative handlers and then
// tells the component it is mounted. Update re-renders and applies attribute
// changes to the live nodes. Unmount reverses all of it.
//
// # Lifecycle
//
//	created → mounted → unmounted
//
// Mounter.Mounted runs strictly after the first successful render. Native
// events reach handlers only between Mounted and Unmount.
//
// # Refs
//
// Ref[T] is a shared single-slot cell. It never owns what it points to; the
// runtime or a component fills it and clears it when the referent goes away.
//
//	handle := vango.NewRef[*Widget]()
//	w := NewWidget(props, handle)
package vango
