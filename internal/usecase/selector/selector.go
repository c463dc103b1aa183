package selector

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime"
	"strings"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure"
	"github.com/andreyxaxa/Image-To-3D/internal/infrastructure/preview"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
)

// SelectorUseCase validates a user supplied file and prepares it for the workflow.
type SelectorUseCase struct {
	preview     infrastructure.PreviewRenderer
	maxFileSize int64

	logger logger.Interface
}

func New(p infrastructure.PreviewRenderer, maxFileSize int64, l logger.Interface) *SelectorUseCase {
	return &SelectorUseCase{
		preview:     p,
		maxFileSize: maxFileSize,
		logger:      l,
	}
}

// IsImage reports whether a declared media type names an image format.
func IsImage(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mt, "image/") && len(mt) > len("image/")
}

func (uc *SelectorUseCase) Accept(
	ctx context.Context,
	name string,
	contentType string,
	data io.Reader,
	size int64,
) (entity.SelectedImage, error) {
	// 1. declared type
	if !IsImage(contentType) {
		return entity.SelectedImage{}, &errs.UnsupportedTypeError{ContentType: contentType}
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)

	// 2. size
	if size == 0 {
		return entity.SelectedImage{}, errs.ErrEmptyFile
	}
	if uc.maxFileSize > 0 && size > uc.maxFileSize {
		return entity.SelectedImage{}, fmt.Errorf("SelectorUseCase - Accept - size %d > %d: %w", size, uc.maxFileSize, errs.ErrFileTooLarge)
	}

	// 3. read, bounded in case size lied
	limit := uc.maxFileSize
	if limit <= 0 {
		limit = size
	}
	if limit <= 0 {
		limit = math.MaxInt32
	}
	raw, err := io.ReadAll(io.LimitReader(data, limit+1))
	if err != nil {
		return entity.SelectedImage{}, fmt.Errorf("SelectorUseCase - Accept - io.ReadAll: %w", err)
	}
	if len(raw) == 0 {
		return entity.SelectedImage{}, errs.ErrEmptyFile
	}
	if int64(len(raw)) > limit {
		return entity.SelectedImage{}, fmt.Errorf("SelectorUseCase - Accept - read %d bytes: %w", len(raw), errs.ErrFileTooLarge)
	}

	// 4. preview; a thumbnail failure is not fatal
	pv, err := uc.preview.Render(ctx, mediaType, raw)
	if err != nil {
		uc.logger.Warn("SelectorUseCase - Accept - preview for %q: %v", name, err)

		pv = preview.DataURL(mediaType, raw)
	}

	return entity.SelectedImage{
		Name:        name,
		ContentType: mediaType,
		Size:        int64(len(raw)),
		Data:        raw,
		Preview:     pv,
	}, nil
}
