package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nikbrunner/mev/internal/storage"
)

var errNotImage = errors.New("upload is not an image")

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

// fail maps store errors to statuses. Unexpected errors are logged and
// answered with 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrCredentials):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(v)
}

// formValue returns a multipart field whether it was sent as a plain value
// or as a file part.
func formValue(r *http.Request, name string) (string, error) {
	if r.MultipartForm == nil {
		return r.FormValue(name), nil
	}
	if vs := r.MultipartForm.Value[name]; len(vs) > 0 {
		return vs[0], nil
	}
	fhs := r.MultipartForm.File[name]
	if len(fhs) == 0 {
		return "", nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formImage reads the optional image part name. A part whose content is
// not an image is errNotImage.
func formImage(r *http.Request, name string) (*storage.Image, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	fhs := r.MultipartForm.File[name]
	if len(fhs) == 0 {
		return nil, nil
	}
	f, err := fhs[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, errNotImage
	}
	return &storage.Image{MIME: mt.String(), Data: data}, nil
}

func decodeString(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
