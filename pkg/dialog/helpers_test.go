package dialog

import "github.com/vango-dev/mwc/pkg/dom"

func domEvent(name string, detail any) dom.Event {
	return dom.Event{Type: name, Detail: detail}
}
