package server

import (
	"errors"
	"net/http"
	"os"

	"github.com/lfmartins/calendario/internal/events"
	"github.com/lfmartins/calendario/internal/upload"
)

// handleUpload handles POST /api/upload. Expects a multipart form with a
// "file" part; the body is capped at upload.MaxUploadSize before parsing.
func (s *CalendarServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "arquivo excede o tamanho máximo")
			return
		}
		writeError(w, http.StatusBadRequest, "Nenhum arquivo fornecido")
		return
	}
	defer file.Close()

	res, err := s.uploads.Store(header.Filename, file)
	switch {
	case errors.Is(err, upload.ErrEmptyFilename):
		writeError(w, http.StatusBadRequest, "Nenhum arquivo selecionado")
		return
	case errors.Is(err, upload.ErrExtensionNotAllowed):
		writeError(w, http.StatusBadRequest, "Tipo de arquivo não permitido")
		return
	case err != nil:
		writeStorageError(w, "store upload", err)
		return
	}

	s.publish(r.Context(), events.TopicUploadStored, events.UploadStored{
		Filename: res.Filename,
		URL:      res.URL,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"filename": res.Filename,
		"url":      res.URL,
	})
}

// handleServeUpload handles GET /uploads/{filename}, returning the raw
// stored bytes.
func (s *CalendarServer) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	f, err := s.uploads.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "arquivo não encontrado")
		return
	}
	if err != nil {
		writeStorageError(w, "open upload", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "arquivo não encontrado")
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
