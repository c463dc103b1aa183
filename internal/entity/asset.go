package entity

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a revocable in-memory reference to converted model bytes.
type Asset struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConversionResult is what the conversion service returned on success.
type ConversionResult struct {
	Data        []byte
	ContentType string
	Filename    string // suggested, model.<format>
}

// Download is a client-side save request.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ModelView describes how the browser should render an asset interactively.
type ModelView struct {
	AssetURL        string `json:"asset_url"`
	DownloadURL     string `json:"download_url"`
	ScriptURL       string `json:"script_url"`
	Alt             string `json:"alt"`
	AutoRotate      bool   `json:"auto_rotate"`
	CameraControls  bool   `json:"camera_controls"`
	ShadowIntensity string `json:"shadow_intensity"`
}
