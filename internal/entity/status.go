package entity

type State string

const (
	Idle          State = "idle"
	ImageSelected State = "image_selected"
	Converting    State = "converting"
	Ready         State = "ready"
	Failed        State = "failed"
)

// Snapshot is a consistent copy of a workflow at one point in time.
type Snapshot struct {
	State  State          `json:"state"`
	Image  *SelectedImage `json:"image,omitempty"`
	Asset  *Asset         `json:"asset,omitempty"`
	Reason string         `json:"reason,omitempty"` // set in Failed
}
