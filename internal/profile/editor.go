// Package profile holds the profile picture editor.
package profile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPictureSize is the largest picture Load accepts.
const MaxPictureSize = 5 << 20

var (
	ErrNoPicture       = errors.New("no picture selected")
	ErrNotImage        = errors.New("file is not an image")
	ErrPictureTooLarge = errors.New("picture is too large")
)

// Picture is a loaded image file.
type Picture struct {
	Name string
	MIME string
	Data []byte
}

// DataURL returns the picture as a base64 data URL.
func (p Picture) DataURL() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Editor keeps the picture chosen in the profile modal until it is
// submitted or the modal closes.
type Editor struct {
	picture *Picture
	limit   int64
}

// NewEditor creates an empty editor accepting pictures up to limit bytes.
// A non-positive limit means MaxPictureSize.
func NewEditor(limit int64) *Editor {
	if limit <= 0 {
		limit = MaxPictureSize
	}
	return &Editor{limit: limit}
}

// Load reads the file at path and keeps it when it is an image. A rejected
// file leaves the previous picture in place.
func (e *Editor) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open picture: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := e.read(filepath.Base(path), f)
	if err != nil {
		return err
	}
	e.picture = p
	return nil
}

func (e *Editor) read(name string, r io.Reader) (*Picture, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.limit+1))
	if err != nil {
		return nil, fmt.Errorf("read picture: %w", err)
	}
	if int64(len(data)) > e.limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrPictureTooLarge, e.limit)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, mt.String())
	}

	return &Picture{Name: name, MIME: mt.String(), Data: data}, nil
}

// Picture returns the loaded picture, if any.
func (e *Editor) Picture() (Picture, bool) {
	if e.picture == nil {
		return Picture{}, false
	}
	return *e.picture, true
}

// Preview returns the data URL of the loaded picture, or "".
func (e *Editor) Preview() string {
	if e.picture == nil {
		return ""
	}
	return e.picture.DataURL()
}

// Submit returns the picture to save. There is no upload endpoint for
// profile pictures, so the picture stays with the caller.
func (e *Editor) Submit() (Picture, error) {
	if e.picture == nil {
		return Picture{}, ErrNoPicture
	}
	return *e.picture, nil
}

// Reset forgets the picture. Called when the modal closes.
func (e *Editor) Reset() {
	e.picture = nil
}
