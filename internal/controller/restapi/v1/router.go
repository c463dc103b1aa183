package v1

import (
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

func NewWorkflowRoutes(
	apiV1Group fiber.Router,
	sessions usecase.SessionUseCase,
	sel usecase.SelectorUseCase,
	pres usecase.PresenterUseCase,
	l logger.Interface,
	cookieName string,
	waitTimeout time.Duration,
	limiter *rate.Limiter,
) {
	r := &V1{
		sessions:    sessions,
		sel:         sel,
		pres:        pres,
		logger:      l,
		limiter:     limiter,
		cookieName:  cookieName,
		waitTimeout: waitTimeout,
	}

	{
		apiV1Group.Use(r.session)

		// API
		apiV1Group.Post("/image", r.selectImage)
		apiV1Group.Delete("/image", r.clearImage)
		apiV1Group.Post("/convert", r.limit, r.convert)
		apiV1Group.Get("/state", r.getState)
		apiV1Group.Get("/model/:id", r.getModel)
		apiV1Group.Get("/model/:id/download", r.downloadModel)

		// UI
		apiV1Group.Get("/", r.showUI)
	}
}
