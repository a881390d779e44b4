package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureKeyEntersCaptureMode(t *testing.T) {
	var m Machine

	action, _ := m.Handle(Key{Kind: KeyCapture})
	assert.Equal(t, ActionEnterCapture, action)
	assert.Equal(t, StateCapture, m.State())
}

func TestCaptureKeyWhileCapturingRecordsDefaultDelay(t *testing.T) {
	var m Machine
	m.Handle(Key{Kind: KeyCapture})

	action, value := m.Handle(Key{Kind: KeyCapture})
	assert.Equal(t, ActionDelay, action)
	assert.Equal(t, DefaultCaptureDelay, value)
	assert.Equal(t, StateCapture, m.State())
}

func TestExitKeyLeavesCaptureMode(t *testing.T) {
	var m Machine
	m.Handle(Key{Kind: KeyCapture})

	action, _ := m.Handle(Key{Kind: KeyExit})
	assert.Equal(t, ActionExitCapture, action)
	assert.Equal(t, StateNormal, m.State())
}

func TestExitKeyIgnoredInNormalMode(t *testing.T) {
	var m Machine

	action, _ := m.Handle(Key{Kind: KeyExit})
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, StateNormal, m.State())
}

func TestDigitsOnlyCountWhileCapturing(t *testing.T) {
	var m Machine

	action, _ := m.Handle(Key{Kind: KeyDigit, Digit: 5})
	assert.Equal(t, ActionNone, action)

	m.Handle(Key{Kind: KeyCapture})

	for digit := 1; digit <= 9; digit++ {
		action, value := m.Handle(Key{Kind: KeyDigit, Digit: digit})
		assert.Equal(t, ActionDelay, action)
		assert.Equal(t, digit, value)
	}
}

func TestDigitZeroMeansTenSeconds(t *testing.T) {
	var m Machine
	m.Handle(Key{Kind: KeyCapture})

	action, value := m.Handle(Key{Kind: KeyDigit, Digit: 0})
	assert.Equal(t, ActionDelay, action)
	assert.Equal(t, 10, value)
}

func TestStartKeyIgnoredWhileCapturing(t *testing.T) {
	var m Machine

	action, _ := m.Handle(Key{Kind: KeyStart})
	assert.Equal(t, ActionStart, action)

	m.Handle(Key{Kind: KeyCapture})
	action, _ = m.Handle(Key{Kind: KeyStart})
	assert.Equal(t, ActionNone, action)
	assert.Equal(t, StateCapture, m.State())
}

func TestStopKeyHonoredInBothStates(t *testing.T) {
	var m Machine

	action, _ := m.Handle(Key{Kind: KeyStop})
	assert.Equal(t, ActionStop, action)

	m.Handle(Key{Kind: KeyCapture})
	action, _ = m.Handle(Key{Kind: KeyStop})
	assert.Equal(t, ActionStop, action)
	// Stopping does not leave capture mode.
	assert.Equal(t, StateCapture, m.State())
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	assert.Equal(t, "f6", b.Capture)
	assert.Equal(t, "f7", b.Start)
	assert.Equal(t, "f8", b.Stop)
	assert.Equal(t, []string{"f9", "esc"}, b.Exit)
}
