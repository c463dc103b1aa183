package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
	"github.com/google/uuid"
)

type AssetRepo struct {
	mu     sync.RWMutex
	assets map[uuid.UUID][]byte
}

func NewAssetRepo() *AssetRepo {
	return &AssetRepo{
		assets: make(map[uuid.UUID][]byte),
	}
}

// Put stores data under a fresh reference. The slice is owned by the repo afterwards.
func (r *AssetRepo) Put(ctx context.Context, data []byte, filename, contentType string) (entity.Asset, error) {
	if err := ctx.Err(); err != nil {
		return entity.Asset{}, fmt.Errorf("AssetRepo - Put: %w", err)
	}

	id := uuid.New()

	r.mu.Lock()
	r.assets[id] = data
	r.mu.Unlock()

	return entity.Asset{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}, nil
}

func (r *AssetRepo) Get(_ context.Context, id uuid.UUID) ([]byte, error) {
	r.mu.RLock()
	data, ok := r.assets[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("AssetRepo - Get - id=%s: %w", id, errs.ErrAssetReleased)
	}

	return data, nil
}

// Release revokes the reference. Releasing twice is a no-op.
func (r *AssetRepo) Release(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.assets, id)
	r.mu.Unlock()

	return nil
}

func (r *AssetRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.assets)
}
