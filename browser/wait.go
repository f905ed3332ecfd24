package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout means that a condition did not become true within its time limit.
var ErrTimeout = errors.New("timed out")

// pollUntil calls cond every interval until it returns true or an error, or until the timeout
// elapses. The condition is always checked at least once.
func pollUntil(ctx context.Context, interval, timeout time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// waitStable reads a value every interval until it has stayed the same for the settle period,
// and returns it. If the value keeps changing until the timeout, the last value read is returned
// along with an error wrapping ErrTimeout.
func waitStable(
	ctx context.Context,
	interval, settle, timeout time.Duration,
	read func() (string, error),
) (string, error) {
	var last string
	var since time.Time
	first := true
	err := pollUntil(ctx, interval, timeout, func() (bool, error) {
		value, err := read()
		if err != nil {
			return false, err
		}
		now := time.Now()
		if first || value != last {
			first = false
			last = value
			since = now
			return false, nil
		}
		return now.Sub(since) >= settle, nil
	})
	return last, err
}
