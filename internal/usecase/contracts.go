package usecase

import (
	"context"
	"io"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
)

type (
	// WorkflowUseCase is the state machine of one browser session.
	WorkflowUseCase interface {
		Select(image entity.SelectedImage) (entity.Snapshot, error)
		Convert() (entity.Snapshot, error)
		Clear() entity.Snapshot
		Snapshot() entity.Snapshot
		Asset() (entity.Asset, error)
		Notify(n entity.Notice)
		Notices() []entity.Notice
		Wait(ctx context.Context) error
		Close()
	}

	SessionUseCase interface {
		Session(id string) WorkflowUseCase
		ExpireIdle() int
		CloseAll()
		Len() int
	}

	SelectorUseCase interface {
		Accept(ctx context.Context, name, contentType string, data io.Reader, size int64) (entity.SelectedImage, error)
	}

	PresenterUseCase interface {
		View(ctx context.Context, asset entity.Asset) (entity.ModelView, error)
		Open(ctx context.Context, asset entity.Asset) ([]byte, error)
		Download(ctx context.Context, asset entity.Asset) (entity.Download, error)
	}
)
