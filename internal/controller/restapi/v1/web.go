package v1

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

var (
	//go:embed web/index.html
	webFiles embed.FS

	indexTemplate = template.Must(template.ParseFS(webFiles, "web/index.html"))
)

type page struct {
	BasePath string
}

func (r *V1) showUI(ctx *fiber.Ctx) error {
	var buf bytes.Buffer

	err := indexTemplate.Execute(&buf, page{BasePath: "/v1"})
	if err != nil {
		r.logger.Error(err, "restapi - v1 - showUI")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with load UI")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")

	return ctx.Send(buf.Bytes())
}
