package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

//go:embed static
var staticFiles embed.FS

// staticHandler serves the embedded browser client.
func staticHandler() (fiber.Handler, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	return adaptor.HTTPHandler(http.FileServer(http.FS(sub))), nil
}
