// Package frontend serves the embedded single-page UI.
package frontend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed dist
var embeddedFiles embed.FS

// Serve registers the frontend routes with the given Echo instance.
func Serve(e *echo.Echo) {
	dist, err := fs.Sub(embeddedFiles, "dist")
	if err != nil {
		// The dist tree is compiled into the binary; failure here means a
		// broken build, not a runtime condition.
		panic(err)
	}

	fileServer := http.FileServer(http.FS(dist))
	e.GET("/", echo.WrapHandler(fileServer))
	e.GET("/index.html", echo.WrapHandler(fileServer))
}
