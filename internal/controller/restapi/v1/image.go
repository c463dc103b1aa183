package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Image-To-3D/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/andreyxaxa/Image-To-3D/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Select image
// @Description Validates the image and makes it the current selection of the session
// @Tags 		workflow
// @Accept 		mpfd
// @Produce 	json
// @Param 		image formData file true "Image file (jpg, png, webp, ...)"
// @Success 	200 {object} response.State
// @Failure 	400 {object} response.Error "Empty or missing file"
// @Failure 	409 {object} response.Error "Conversion in progress"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Not an image"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/image [post]
func (r *V1) selectImage(ctx *fiber.Ctx) error {
	wf := workflowOf(ctx)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "image is required")
	}

	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - selectImage")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
	}
	defer fileReader.Close()

	image, err := r.sel.Accept(ctx.UserContext(), file.Filename, file.Header.Get(fiber.HeaderContentType), fileReader, file.Size)
	if err != nil {
		var typeErr *errs.UnsupportedTypeError

		switch {
		case errors.As(err, &typeErr):
			wf.Notify(entity.UnsupportedTypeNotice())

			return errorResponse(ctx, http.StatusUnsupportedMediaType, typeErr.Error())
		case errors.Is(err, errs.ErrEmptyFile):
			return errorResponse(ctx, http.StatusBadRequest, "file is empty")
		case errors.Is(err, errs.ErrFileTooLarge):
			return errorResponse(ctx, http.StatusRequestEntityTooLarge, "file too large")
		}

		r.logger.Error(err, "restapi - v1 - selectImage")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with reading the file")
	}

	snap, err := wf.Select(image)
	if err != nil {
		return workflowError(ctx, err)
	}

	return ctx.Status(http.StatusOK).JSON(response.NewState(snap, wf.Notices(), nil))
}

// @Summary 	Clear image
// @Description Drops the selected image and any converted model of the session
// @Tags 		workflow
// @Produce 	json
// @Success 	200 {object} response.State
// @Router 		/v1/image [delete]
func (r *V1) clearImage(ctx *fiber.Ctx) error {
	wf := workflowOf(ctx)

	snap := wf.Clear()

	return ctx.Status(http.StatusOK).JSON(response.NewState(snap, wf.Notices(), nil))
}

func workflowError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errs.ErrMissingInput):
		return errorResponse(ctx, http.StatusBadRequest, "no image selected")
	case errors.Is(err, errs.ErrConversionInProgress):
		return errorResponse(ctx, http.StatusConflict, "conversion in progress")
	case errors.Is(err, errs.ErrClosed):
		return errorResponse(ctx, http.StatusGone, "session expired")
	}

	return errorResponse(ctx, http.StatusInternalServerError, "workflow problems")
}
