package hotkey

import (
	"strconv"
	"sync"

	hook "github.com/robotn/gohook"
	"go.uber.org/zap"
)

// Bindings names the keys the listener reacts to, in gohook key-name
// form ("f6", "esc", ...).
type Bindings struct {
	Capture string   // enter capture mode / record with default delay
	Start   string   // start the clicker (ignored while capturing)
	Stop    string   // stop the clicker (honored in either state)
	Exit    []string // leave capture mode
}

// DefaultBindings mirrors the classic layout: F6 capture, F7 start,
// F8 stop, F9 or Esc to leave capture mode.
func DefaultBindings() Bindings {
	return Bindings{Capture: "f6", Start: "f7", Stop: "f8", Exit: []string{"f9", "esc"}}
}

// Callbacks receive the resolved hotkey actions. They are invoked from
// the hook's dispatch goroutine; a panic in any of them is swallowed so
// the OS-level hook never dies.
type Callbacks struct {
	EnterCapture func()
	ExitCapture  func()
	Delay        func(seconds int)
	Start        func()
	Stop         func()
}

// Listener owns the process-wide keyboard hook and feeds key presses
// through the capture-mode state machine.
type Listener struct {
	bind Bindings
	cb   Callbacks
	log  *zap.Logger

	mu      sync.Mutex
	machine Machine
	started bool
}

// NewListener builds a listener; call Start to install the hook.
func NewListener(bind Bindings, cb Callbacks, log *zap.Logger) *Listener {
	return &Listener{bind: bind, cb: cb, log: log}
}

// Start registers the bound keys and launches the global hook. Only one
// hook may exist per process.
func (l *Listener) Start() {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	register := func(name string, key Key) {
		hook.Register(hook.KeyDown, []string{name}, func(hook.Event) {
			l.handle(key)
		})
	}

	register(l.bind.Capture, Key{Kind: KeyCapture})
	register(l.bind.Start, Key{Kind: KeyStart})
	register(l.bind.Stop, Key{Kind: KeyStop})
	for _, name := range l.bind.Exit {
		register(name, Key{Kind: KeyExit})
	}
	for d := 0; d <= 9; d++ {
		register(strconv.Itoa(d), Key{Kind: KeyDigit, Digit: d})
	}

	events := hook.Start()
	go func() {
		<-hook.Process(events)
	}()
	l.log.Info("global hotkeys active",
		zap.String("capture", l.bind.Capture),
		zap.String("start", l.bind.Start),
		zap.String("stop", l.bind.Stop),
		zap.Strings("exit", l.bind.Exit))
}

// Stop tears down the OS-level hook.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return
	}
	l.started = false
	hook.End()
}

func (l *Listener) handle(k Key) {
	// A fault in a subscriber must never crash the hook thread.
	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("hotkey handler panic", zap.Any("panic", r))
		}
	}()

	l.mu.Lock()
	action, value := l.machine.Handle(k)
	cb := l.cb
	l.mu.Unlock()

	switch action {
	case ActionEnterCapture:
		if cb.EnterCapture != nil {
			cb.EnterCapture()
		}
	case ActionExitCapture:
		if cb.ExitCapture != nil {
			cb.ExitCapture()
		}
	case ActionDelay:
		if cb.Delay != nil {
			cb.Delay(value)
		}
	case ActionStart:
		if cb.Start != nil {
			cb.Start()
		}
	case ActionStop:
		if cb.Stop != nil {
			cb.Stop()
		}
	}
}
