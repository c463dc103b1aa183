package presenter

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/internal/repo"
)

// DownloadFilename is the fixed name a saved model gets.
const DownloadFilename = "model.glb"

// PresenterUseCase renders and saves converted models. It only reads the
// in-memory reference and keeps no state of its own.
type PresenterUseCase struct {
	assets    repo.AssetRepo
	scriptURL string
	basePath  string
}

func New(assets repo.AssetRepo, scriptURL, basePath string) *PresenterUseCase {
	return &PresenterUseCase{
		assets:    assets,
		scriptURL: scriptURL,
		basePath:  basePath,
	}
}

func (uc *PresenterUseCase) View(ctx context.Context, asset entity.Asset) (entity.ModelView, error) {
	if _, err := uc.assets.Get(ctx, asset.ID); err != nil {
		return entity.ModelView{}, fmt.Errorf("PresenterUseCase - View - uc.assets.Get: %w", err)
	}

	assetURL := fmt.Sprintf("%s/model/%s", uc.basePath, asset.ID)

	return entity.ModelView{
		AssetURL:        assetURL,
		DownloadURL:     assetURL + "/download",
		ScriptURL:       uc.scriptURL,
		Alt:             "3D Model",
		AutoRotate:      true,
		CameraControls:  true,
		ShadowIntensity: "1",
	}, nil
}

func (uc *PresenterUseCase) Open(ctx context.Context, asset entity.Asset) ([]byte, error) {
	data, err := uc.assets.Get(ctx, asset.ID)
	if err != nil {
		return nil, fmt.Errorf("PresenterUseCase - Open - uc.assets.Get: %w", err)
	}

	return data, nil
}

func (uc *PresenterUseCase) Download(ctx context.Context, asset entity.Asset) (entity.Download, error) {
	data, err := uc.assets.Get(ctx, asset.ID)
	if err != nil {
		return entity.Download{}, fmt.Errorf("PresenterUseCase - Download - uc.assets.Get: %w", err)
	}

	return entity.Download{
		Filename:    DownloadFilename,
		ContentType: asset.ContentType,
		Data:        data,
	}, nil
}
