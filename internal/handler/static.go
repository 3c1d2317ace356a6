package handler

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/deppfellow/tacomemo/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticHandler serves uploaded images and the React client.
type StaticHandler struct {
	Handler
}

func NewStaticHandler(s *server.Server) *StaticHandler {
	return &StaticHandler{
		Handler: NewHandler(s),
	}
}

// ServeUpload serves a file from the upload directory.
func (h *StaticHandler) ServeUpload(c echo.Context) error {
	name, err := wildcardPath(c)
	if err != nil {
		return errs.NewNotFoundError("File not found", true, nil)
	}

	file, ok := regularFile(h.server.Uploads.Dir(), name)
	if !ok {
		return errs.NewNotFoundError("File not found", true, nil)
	}

	return c.File(file)
}

// ServeClient serves an existing static asset from the public or client
// build directory. Any other path gets the client's index.html so the React
// router can resolve it.
func (h *StaticHandler) ServeClient(c echo.Context) error {
	name, err := wildcardPath(c)
	if err == nil {
		for _, root := range []string{h.server.Config.Client.PublicDir, h.server.Config.Client.BuildDir} {
			if root == "" {
				continue
			}
			if file, ok := regularFile(root, name); ok {
				return c.File(file)
			}
		}
	}

	index, ok := regularFile(h.server.Config.Client.BuildDir, "index.html")
	if !ok {
		return errs.NewNotFoundError("Client build not found", false, nil)
	}

	return c.File(index)
}

// wildcardPath returns the unescaped "*" parameter, cleaned so it can never
// climb out of the directory it is joined to.
func wildcardPath(c echo.Context) (string, error) {
	raw, err := url.PathUnescape(c.Param("*"))
	if err != nil {
		return "", err
	}
	return path.Clean("/" + raw)[1:], nil
}

func regularFile(root, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	full := filepath.Join(root, filepath.FromSlash(name))

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return full, true
}
