// Package upload stores carousel image files on the local disk.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoFile is returned when the request carried no file.
var ErrNoFile = errors.New("no file provided")

// StoredFile describes a file written by Receive.
type StoredFile struct {
	// Name is the file name inside the upload directory.
	Name string
	// Path is the file's location on disk, the upload directory joined
	// with Name.
	Path string

	ContentType string
	Size        int64
}

// Receiver writes uploaded files into a single directory.
type Receiver struct {
	dir    string
	logger *zerolog.Logger
	now    func() time.Time
}

// NewReceiver creates dir if needed and returns a receiver writing into it.
func NewReceiver(dir string, logger *zerolog.Logger) (*Receiver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return &Receiver{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Dir returns the directory files are written to.
func (r *Receiver) Dir() string {
	return r.dir
}

// Receive copies fh into the upload directory as "<millis>-<base name>".
//
// Existing files are never overwritten: if the name is taken the file is
// stored as "<millis>-<uuid8>-<base name>" instead.
func (r *Receiver) Receive(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	if fh == nil {
		return nil, ErrNoFile
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	base := baseName(fh.Filename)
	millis := strconv.FormatInt(r.now().UnixMilli(), 10)

	name := millis + "-" + base
	dst, err := r.create(name)
	if errors.Is(err, fs.ErrExist) {
		name = millis + "-" + uuid.NewString()[:8] + "-" + base
		dst, err = r.create(name)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = r.Remove(name)
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	stored := &StoredFile{
		Name:        name,
		Path:        filepath.Join(r.dir, name),
		ContentType: "application/octet-stream",
		Size:        size,
	}

	if mtype, err := mimetype.DetectFile(stored.Path); err == nil {
		stored.ContentType = mtype.String()
	}

	r.logger.Debug().
		Str("file", stored.Name).
		Str("content_type", stored.ContentType).
		Int64("size", stored.Size).
		Msg("stored upload")

	return stored, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (r *Receiver) Remove(name string) error {
	err := os.Remove(filepath.Join(r.dir, baseName(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (r *Receiver) create(name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(r.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// baseName strips any directory part, in either slash style, from a client
// supplied file name.
func baseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))

	switch base {
	case ".", "..", "/", "":
		return "upload"
	}

	return base
}
