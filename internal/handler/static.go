package handler

import (
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// StaticHandler serves files from the static directory.
type StaticHandler struct {
	Dir string
}

// Favicon handles GET /favicon.ico.  A missing file yields 404.
func (h *StaticHandler) Favicon(c echo.Context) error {
	path := filepath.Join(h.Dir, "favicon.ico")
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return echo.ErrNotFound
	}
	c.Response().Header().Set(echo.HeaderContentType, "image/vnd.microsoft.icon")
	return c.File(path)
}
