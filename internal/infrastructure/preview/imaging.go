package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers webp with image.Decode
)

const (
	_defaultMaxWidth  = 768
	_defaultMaxHeight = 768
)

type Renderer struct {
	maxWidth  int
	maxHeight int
}

func New(maxWidth, maxHeight int) *Renderer {
	if maxWidth <= 0 {
		maxWidth = _defaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = _defaultMaxHeight
	}

	return &Renderer{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// Render returns a data URL of a thumbnail no larger than the configured box.
// Images already inside the box are re-encoded as is.
func (r *Renderer) Render(ctx context.Context, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("Renderer - Render: %w", err)
	}

	img, err := decodeImage(data)
	if err != nil {
		return "", fmt.Errorf("Renderer - Render - decodeImage: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > r.maxWidth || b.Dy() > r.maxHeight {
		img = imaging.Fit(img, r.maxWidth, r.maxHeight, imaging.Lanczos)
	}

	res, outType, err := encodeImage(img, contentType)
	if err != nil {
		return "", fmt.Errorf("Renderer - Render - encodeImage: %w", err)
	}

	return DataURL(outType, res), nil
}

// DataURL builds a base64 data URL, the same form a browser FileReader produces.
func DataURL(contentType string, data []byte) string {
	var sb strings.Builder

	sb.WriteString("data:")
	sb.WriteString(contentType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))

	return sb.String()
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("Renderer - decodeImage - imaging.Decode: %w", err)
	}

	return img, nil
}

func encodeImage(img image.Image, contentType string) ([]byte, string, error) {
	var buf bytes.Buffer
	var format imaging.Format

	switch contentType {
	case "image/jpeg", "image/jpg":
		format, contentType = imaging.JPEG, "image/jpeg"
	case "image/png":
		format = imaging.PNG
	case "image/gif":
		format = imaging.GIF
	default:
		// webp and friends have no encoder here
		format, contentType = imaging.PNG, "image/png"
	}

	err := imaging.Encode(&buf, img, format)
	if err != nil {
		return nil, "", fmt.Errorf("Renderer - encodeImage - imaging.Encode: %w", err)
	}

	return buf.Bytes(), contentType, nil
}
