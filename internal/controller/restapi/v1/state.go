package v1

import (
	"net/http"

	"github.com/andreyxaxa/Image-To-3D/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Image-To-3D/internal/entity"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Get state
// @Description Returns the workflow state of the session and drains pending notices
// @Tags 		workflow
// @Produce 	json
// @Success 	200 {object} response.State
// @Router 		/v1/state [get]
func (r *V1) getState(ctx *fiber.Ctx) error {
	return r.stateResponse(ctx, http.StatusOK)
}

func (r *V1) stateResponse(ctx *fiber.Ctx, code int) error {
	wf := workflowOf(ctx)

	snap := wf.Snapshot()

	var view *entity.ModelView
	if snap.Asset != nil {
		v, err := r.pres.View(ctx.UserContext(), *snap.Asset)
		if err != nil {
			r.logger.Error(err, "restapi - v1 - stateResponse")
		} else {
			view = &v
		}
	}

	return ctx.Status(code).JSON(response.NewState(snap, wf.Notices(), view))
}
