// Package upload validates and persists uploaded image files.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MaxUploadSize is the hard ceiling on an uploaded file, enforced at the
// transport with http.MaxBytesReader.
const MaxUploadSize = 16 << 20 // 16 MiB

// Validation errors, one per rejection cause so the HTTP layer can emit a
// distinct message for each.
var (
	ErrEmptyFilename       = errors.New("nenhum arquivo selecionado")
	ErrExtensionNotAllowed = errors.New("tipo de arquivo não permitido")
)

// allowedExtensions is the set of accepted image extensions, matched
// case-insensitively against the substring after the last dot.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"jfif": true,
}

// Uploader writes validated files into a single directory under
// collision-resistant generated names.
type Uploader struct {
	dir string

	// now is injectable for deterministic stored names in tests.
	now func() time.Time
}

// New creates the upload directory if absent and returns an Uploader for it.
func New(dir string) (*Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Uploader{dir: dir, now: time.Now}, nil
}

// Dir returns the upload directory.
func (u *Uploader) Dir() string {
	return u.dir
}

// Allowed reports whether the filename carries an accepted image extension.
func Allowed(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename collapses a user-supplied filename into a filesystem-safe
// token: path components are stripped and any run of characters outside
// [A-Za-z0-9._-] becomes a single underscore. Returns "" when nothing
// safe remains.
func SecureFilename(name string) string {
	// Strip directory components from both separator conventions.
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = name[strings.LastIndexByte(name, '\\')+1:]

	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		safe := r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if safe {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" || strings.Trim(out, ".") == "" {
		return ""
	}
	return out
}

// Result describes a stored upload.
type Result struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Store validates the filename, generates a timestamped collision-resistant
// stored name and writes the bytes verbatim into the upload directory.
func (u *Uploader) Store(filename string, r io.Reader) (*Result, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	if !Allowed(filename) {
		return nil, ErrExtensionNotAllowed
	}

	safe := SecureFilename(filename)
	if safe == "" {
		return nil, ErrExtensionNotAllowed
	}

	// Seconds since epoch with microsecond precision, the same shape the
	// original service used, keeps repeated uploads of the same name apart.
	ts := strconv.FormatFloat(float64(u.now().UnixMicro())/1e6, 'f', 6, 64)
	stored := ts + "_" + safe

	dst, err := os.Create(filepath.Join(u.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close upload file: %w", err)
	}

	return &Result{
		Filename: stored,
		URL:      "/uploads/" + stored,
	}, nil
}

// Open returns the named stored file for serving. The name is sanitized to
// its base component so a crafted path cannot escape the upload directory.
func (u *Uploader) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(u.dir, filepath.Base(name)))
}
