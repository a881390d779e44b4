package profile

import (
	"encoding/json"
	"math/rand"
)

// DefaultPointDelay is the delay applied to a point when a saved file
// omits the field. It intentionally differs from the 3-second default
// used for freshly captured points; existing saved profiles depend on it.
const DefaultPointDelay = 8.0

// ClickPoint is a single click target with its post-click settings.
// Delay is the pause after this point's click, before the next one.
type ClickPoint struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Delay       float64 `json:"delay"`
	Randomize   bool    `json:"randomize"`
	RandomRange int     `json:"random_range"`
	Enabled     bool    `json:"enabled"`
}

// NewClickPoint returns an enabled point at (x, y) with the default delay.
func NewClickPoint(x, y int) ClickPoint {
	return ClickPoint{X: x, Y: y, Delay: DefaultPointDelay, Enabled: true}
}

// ClickPosition returns the coordinate to click. When Randomize is set,
// each call redraws an independent uniform offset in [-RandomRange, RandomRange]
// per axis, so consecutive clicks on the same point land on nearby pixels.
func (p ClickPoint) ClickPosition() (int, int) {
	if !p.Randomize {
		return p.X, p.Y
	}
	return p.X + randomOffset(p.RandomRange), p.Y + randomOffset(p.RandomRange)
}

func randomOffset(r int) int {
	if r <= 0 {
		return 0
	}
	return rand.Intn(2*r+1) - r
}

// UnmarshalJSON fills absent fields with the documented read-side
// defaults (x=0, y=0, delay=8.0, randomize=false, random_range=0,
// enabled=true) so profiles written by older builds load unchanged.
func (p *ClickPoint) UnmarshalJSON(data []byte) error {
	type clickPoint ClickPoint
	cp := clickPoint{Delay: DefaultPointDelay, Enabled: true}
	if err := json.Unmarshal(data, &cp); err != nil {
		return err
	}
	*p = ClickPoint(cp)
	return nil
}
