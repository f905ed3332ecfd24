package browser

import (
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
)

// networkTracker follows the requests of a page through its CDP network events, so that the page
// can tell when it has no requests in flight.
type networkTracker struct {
	inFlight     map[network.RequestID]struct{}
	started      int
	lastActivity time.Time
	now          func() time.Time
	lock         sync.Mutex
}

func newNetworkTracker() *networkTracker {
	return &networkTracker{
		inFlight: make(map[network.RequestID]struct{}),
		now:      time.Now,
	}
}

// handleEvent updates the tracker for a CDP event. Other events are ignored.
func (n *networkTracker) handleEvent(ev interface{}) {
	switch ev := ev.(type) {
	case *network.EventRequestWillBeSent:
		n.requestStarted(ev.RequestID)
	case *network.EventLoadingFinished:
		n.requestEnded(ev.RequestID)
	case *network.EventLoadingFailed:
		n.requestEnded(ev.RequestID)
	}
}

func (n *networkTracker) requestStarted(id network.RequestID) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.inFlight[id] = struct{}{}
	n.started++
	n.lastActivity = n.now()
}

func (n *networkTracker) requestEnded(id network.RequestID) {
	n.lock.Lock()
	defer n.lock.Unlock()
	if _, ok := n.inFlight[id]; !ok {
		return
	}
	delete(n.inFlight, id)
	n.lastActivity = n.now()
}

// quietSince returns true if no request is in flight, and there has been no network activity for
// at least the quiet period, counting from whichever is later: the last activity or the given
// start time.
func (n *networkTracker) quietSince(start time.Time, quiet time.Duration) bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	if len(n.inFlight) > 0 {
		return false
	}
	from := start
	if n.lastActivity.After(from) {
		from = n.lastActivity
	}
	return n.now().Sub(from) >= quiet
}

// requestsStarted returns the total number of requests seen so far.
func (n *networkTracker) requestsStarted() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.started
}
