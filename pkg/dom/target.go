package dom

import "sync"

// Listener is a single event subscription.
// A nil *Listener is valid; Remove on it does nothing.
type Listener struct {
	target *EventTarget
	event  string
	fn     func(Event)
	once   sync.Once
	onDrop func(event string, last bool)
}

// Event returns the event name the listener is subscribed to.
func (l *Listener) Event() string {
	if l == nil {
		return ""
	}
	return l.event
}

// Remove releases the subscription. Safe to call more than once.
func (l *Listener) Remove() {
	if l == nil || l.target == nil {
		return
	}
	l.once.Do(func() {
		last := l.target.remove(l)
		if l.onDrop != nil {
			l.onDrop(l.event, last)
		}
	})
}

// EventTarget is a registry of listeners keyed by event name.
// The zero value is ready to use.
type EventTarget struct {
	mu        sync.Mutex
	listeners map[string][]*Listener

	// OnFirst is called when the first listener for an event is added.
	OnFirst func(event string)

	// OnLast is called when the last listener for an event is removed.
	OnLast func(event string)
}

// Add subscribes fn to event.
func (t *EventTarget) Add(event string, fn func(Event)) *Listener {
	l := &Listener{target: t, event: event, fn: fn}
	l.onDrop = func(event string, last bool) {
		if last && t.OnLast != nil {
			t.OnLast(event)
		}
	}

	t.mu.Lock()
	if t.listeners == nil {
		t.listeners = make(map[string][]*Listener)
	}
	first := len(t.listeners[event]) == 0
	t.listeners[event] = append(t.listeners[event], l)
	onFirst := t.OnFirst
	t.mu.Unlock()

	if first && onFirst != nil {
		onFirst(event)
	}
	return l
}

// remove unregisters l and reports whether it was the last listener for its event.
func (t *EventTarget) remove(l *Listener) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := t.listeners[l.event]
	for i, cur := range list {
		if cur == l {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.listeners, l.event)
		return true
	}
	t.listeners[l.event] = list
	return false
}

// Dispatch delivers e to every listener subscribed to e.Type, in
// subscription order. It returns the number of listeners invoked.
func (t *EventTarget) Dispatch(e Event) int {
	t.mu.Lock()
	list := make([]*Listener, len(t.listeners[e.Type]))
	copy(list, t.listeners[e.Type])
	t.mu.Unlock()

	for _, l := range list {
		if l.fn != nil {
			l.fn(e)
		}
	}
	return len(list)
}

// Count returns the number of listeners subscribed to event.
func (t *EventTarget) Count(event string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[event])
}

// Clear drops every listener without running OnLast.
func (t *EventTarget) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = nil
}
