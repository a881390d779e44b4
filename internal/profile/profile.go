package profile

import "encoding/json"

// DefaultStartDelay is the start delay substituted when a saved file
// omits the field.
const DefaultStartDelay = 3.0

// Profile is one saved run configuration: an ordered click sequence plus
// its run settings. Point order is the click order within one pass.
type Profile struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDelay  float64      `json:"start_delay"`
	LoopCount   int          `json:"loop_count"` // 0 = run until stopped
	ClickPoints []ClickPoint `json:"click_points"`
	SavedAt     string       `json:"saved_at"`
}

// UnmarshalJSON applies load-time defaults for absent fields:
// start_delay 3.0, loop_count 0, empty point list. Unknown fields are
// ignored.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type prof Profile
	pr := prof{StartDelay: DefaultStartDelay}
	if err := json.Unmarshal(data, &pr); err != nil {
		return err
	}
	*p = Profile(pr)
	return nil
}
