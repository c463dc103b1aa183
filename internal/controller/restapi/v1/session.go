package v1

import (
	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const _workflowKey = "workflow"

// session binds the request to the workflow of its browser session,
// issuing a cookie on first visit.
func (r *V1) session(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Cookies(r.cookieName))
	if err != nil {
		id = uuid.New()

		ctx.Cookie(&fiber.Cookie{
			Name:     r.cookieName,
			Value:    id.String(),
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	ctx.Locals(_workflowKey, r.sessions.Session(id.String()))

	return ctx.Next()
}

func workflowOf(ctx *fiber.Ctx) usecase.WorkflowUseCase {
	wf, _ := ctx.Locals(_workflowKey).(usecase.WorkflowUseCase)

	return wf
}
