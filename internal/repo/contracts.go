package repo

import (
	"context"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/google/uuid"
)

type (
	// AssetRepo holds converted models behind revocable references.
	AssetRepo interface {
		Put(ctx context.Context, data []byte, filename, contentType string) (entity.Asset, error)
		Get(ctx context.Context, id uuid.UUID) ([]byte, error)
		Release(ctx context.Context, id uuid.UUID) error
		Len() int
	}
)
