package v1

import (
	"context"
	"net/http"

	"github.com/andreyxaxa/Image-To-3D/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Convert image to 3D
// @Description Submits the selected image to the conversion service. Returns at once
// @Description with state converting unless wait=true, which holds the response until
// @Description the conversion resolves.
// @Tags 		workflow
// @Produce 	json
// @Param 		wait query bool false "Wait for the result"
// @Success 	200 {object} response.State "Resolved (wait=true)"
// @Success 	202 {object} response.State "Converting"
// @Failure 	400 {object} response.Error "No image selected"
// @Failure 	409 {object} response.Error "Conversion in progress"
// @Failure 	429 {object} response.Error "Too many conversions"
// @Router 		/v1/convert [post]
func (r *V1) convert(ctx *fiber.Ctx) error {
	wf := workflowOf(ctx)

	snap, err := wf.Convert()
	if err != nil {
		return workflowError(ctx, err)
	}

	if !ctx.QueryBool("wait") {
		return ctx.Status(http.StatusAccepted).JSON(response.NewState(snap, nil, nil))
	}

	waitCtx, cancel := context.WithTimeout(ctx.UserContext(), r.waitTimeout)
	defer cancel()

	err = wf.Wait(waitCtx)
	if err != nil {
		// still converting; the client falls back to polling
		return ctx.Status(http.StatusAccepted).JSON(response.NewState(wf.Snapshot(), nil, nil))
	}

	return r.stateResponse(ctx, http.StatusOK)
}
