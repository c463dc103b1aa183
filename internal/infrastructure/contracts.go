package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
)

type (
	// Converter turns an image into a 3D model with a single remote call.
	Converter interface {
		Convert(ctx context.Context, image entity.SelectedImage) (entity.ConversionResult, error)
	}

	PreviewRenderer interface {
		Render(ctx context.Context, contentType string, data []byte) (string, error)
	}
)
