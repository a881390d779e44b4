package hotkey

// State of the key interpreter. Capture mode changes what digit keys
// mean: they become delay values for the point being recorded instead
// of passing through.
type State int

const (
	StateNormal State = iota
	StateCapture
)

// Action is what one key press resolved to.
type Action int

const (
	ActionNone Action = iota
	ActionEnterCapture
	ActionExitCapture
	ActionDelay // carries a delay value in seconds
	ActionStart
	ActionStop
)

// KeyKind classifies a pressed key after binding resolution.
type KeyKind int

const (
	KeyCapture KeyKind = iota
	KeyExit
	KeyDigit
	KeyStart
	KeyStop
)

// Key is one resolved key press. Digit is only meaningful for KeyDigit.
type Key struct {
	Kind  KeyKind
	Digit int
}

// DefaultCaptureDelay is the delay assigned when the capture key is
// pressed again while already capturing (record-at-default shortcut).
const DefaultCaptureDelay = 3

type transition struct {
	action Action
	next   State
}

// table maps (state, key) to (action, next state). Keys absent from a
// state's row are ignored in that state.
var table = map[State]map[KeyKind]transition{
	StateNormal: {
		KeyCapture: {ActionEnterCapture, StateCapture},
		KeyStart:   {ActionStart, StateNormal},
		KeyStop:    {ActionStop, StateNormal},
	},
	StateCapture: {
		KeyCapture: {ActionDelay, StateCapture}, // record with the default delay
		KeyExit:    {ActionExitCapture, StateNormal},
		KeyDigit:   {ActionDelay, StateCapture},
		KeyStop:    {ActionStop, StateCapture}, // stop is honored in either state
	},
}

// Machine interprets a flat stream of key presses contextually.
// The zero value starts in StateNormal.
type Machine struct {
	state State
}

// State returns the current interpreter state.
func (m *Machine) State() State { return m.state }

// Handle resolves one key press against the dispatch table, advances
// the state, and returns the action plus its delay value (seconds, for
// ActionDelay only). Digit 0 maps to 10 seconds.
func (m *Machine) Handle(k Key) (Action, int) {
	tr, ok := table[m.state][k.Kind]
	if !ok {
		return ActionNone, 0
	}
	m.state = tr.next

	if tr.action != ActionDelay {
		return tr.action, 0
	}
	if k.Kind == KeyCapture {
		return ActionDelay, DefaultCaptureDelay
	}
	if k.Digit == 0 {
		return ActionDelay, 10
	}
	return ActionDelay, k.Digit
}
