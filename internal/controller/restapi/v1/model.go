package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary 	Get model
// @Description Serves the converted model of the session for the interactive viewer
// @Tags 		model
// @Produce 	octet-stream
// @Param 		id path string true "Model ID(uuid)"
// @Success 	200 {file} binary
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Model not found"
// @Router 		/v1/model/{id} [get]
func (r *V1) getModel(ctx *fiber.Ctx) error {
	asset, err := r.sessionAsset(ctx)
	if err != nil {
		return modelError(ctx, err)
	}

	data, err := r.pres.Open(ctx.UserContext(), asset)
	if err != nil {
		return modelError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, asset.ContentType)
	ctx.Set(fiber.HeaderCacheControl, "no-store")

	return ctx.Send(data)
}

// @Summary 	Download model
// @Description Saves the converted model as model.glb
// @Tags 		model
// @Produce 	octet-stream
// @Param 		id path string true "Model ID(uuid)"
// @Success 	200 {file} binary
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Model not found"
// @Router 		/v1/model/{id}/download [get]
func (r *V1) downloadModel(ctx *fiber.Ctx) error {
	asset, err := r.sessionAsset(ctx)
	if err != nil {
		return modelError(ctx, err)
	}

	dl, err := r.pres.Download(ctx.UserContext(), asset)
	if err != nil {
		return modelError(ctx, err)
	}

	workflowOf(ctx).Notify(entity.DownloadedNotice())

	ctx.Attachment(dl.Filename)
	ctx.Set(fiber.HeaderContentType, dl.ContentType)
	ctx.Set(fiber.HeaderCacheControl, "no-store")

	return ctx.Send(dl.Data)
}

var errInvalidID = errors.New("invalid id")

// sessionAsset resolves :id against the model the session currently holds.
func (r *V1) sessionAsset(ctx *fiber.Ctx) (entity.Asset, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return entity.Asset{}, errInvalidID
	}

	asset, err := workflowOf(ctx).Asset()
	if err != nil {
		return entity.Asset{}, err
	}
	if asset.ID != id {
		return entity.Asset{}, errs.ErrNoAsset
	}

	return asset, nil
}

func modelError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	case errors.Is(err, errs.ErrNoAsset), errors.Is(err, errs.ErrAssetReleased):
		return errorResponse(ctx, http.StatusNotFound, "model not found")
	}

	return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
}
