package entity

// SelectedImage is the image the user picked. It is replaced as a whole,
// never mutated in place.
type SelectedImage struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`

	// Preview is a data URL the browser can render without another request.
	Preview string `json:"preview,omitempty"`
}
