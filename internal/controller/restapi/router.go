package restapi

import (
	"net/http"

	"github.com/andreyxaxa/Image-To-3D/config"
	v1 "github.com/andreyxaxa/Image-To-3D/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"golang.org/x/time/rate"
)

// @title Image to 3D converter
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	sessions usecase.SessionUseCase,
	sel usecase.SelectorUseCase,
	pres usecase.PresenterUseCase,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Redirect("/v1/", http.StatusFound)
	})

	var limiter *rate.Limiter
	if cfg.Converter.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Converter.RateLimit), cfg.Converter.RateBurst)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewWorkflowRoutes(apiV1Group, sessions, sel, pres, l, cfg.Session.CookieName, cfg.HTTP.WriteTimeout, limiter)
	}
}
