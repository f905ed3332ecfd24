package browser

import (
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
)

// dialogLog collects dialog events of a tab until the action that opened the dialogs takes them.
// Events arrive on the listener goroutine, while the tab may be shared by tests with different
// loggers.
type dialogLog struct {
	lock     sync.Mutex
	messages []string
}

// handleEvent returns true if the event is a dialog that has to be accepted.
func (d *dialogLog) handleEvent(ev interface{}) bool {
	opening, ok := ev.(*page.EventJavascriptDialogOpening)
	if !ok {
		return false
	}
	d.add("Accepting %s dialog: %q", opening.Type, opening.Message)
	return true
}

func (d *dialogLog) add(format string, args ...interface{}) {
	d.lock.Lock()
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
	d.lock.Unlock()
}

func (d *dialogLog) take() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	m := d.messages
	d.messages = nil
	return m
}
