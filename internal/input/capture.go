package input

import (
	"errors"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// ErrCaptureTimeout is returned when no click arrives within the wait window.
var ErrCaptureTimeout = errors.New("timed out waiting for a mouse click")

// CaptureClickPosition blocks until the user clicks anywhere on screen
// and returns the cursor location at that moment. timeout <= 0 waits
// indefinitely. The process-wide hook must not already be running.
func CaptureClickPosition(timeout time.Duration) (int, int, error) {
	clickChan := make(chan struct {
		X int
		Y int
	})
	stopChan := make(chan bool, 1)

	go func() {
		evChan := hook.Start()
		defer hook.End()

		for {
			select {
			case ev := <-evChan:
				if ev.Kind == hook.MouseDown {
					x, y := robotgo.Location()
					clickChan <- struct {
						X int
						Y int
					}{X: x, Y: y}
				}
			case <-stopChan:
				return
			}
		}
	}()

	var timeoutChan <-chan time.Time
	if timeout > 0 {
		timeoutChan = time.After(timeout)
	}

	select {
	case pos := <-clickChan:
		stopChan <- true
		return pos.X, pos.Y, nil
	case <-timeoutChan:
		stopChan <- true
		return 0, 0, ErrCaptureTimeout
	}
}
