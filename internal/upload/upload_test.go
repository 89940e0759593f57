package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestUploader(t *testing.T) *Uploader {
	t.Helper()
	u, err := New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "uploads")
	if _, err := New(dir); err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"anim.gif", true},
		{"pic.JFIF", true},
		{"doc.pdf", false},
		{"script.sh", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.name); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{`..\..\windows\evil.png`, "evil.png"},
		{"minha foto.png", "minha_foto.png"},
		{"açaí bowl.jpg", "a_a_bowl.jpg"},
		{"weird!!name??.gif", "weird_name_.gif"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := SecureFilename(tt.in); got != tt.want {
			t.Errorf("SecureFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreRejections(t *testing.T) {
	u := newTestUploader(t)

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"empty filename", "", ErrEmptyFilename},
		{"disallowed extension", "malware.exe", ErrExtensionNotAllowed},
		{"no extension", "README", ErrExtensionNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Store(tt.filename, strings.NewReader("x"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreWritesTimestampedFile(t *testing.T) {
	u := newTestUploader(t)
	u.now = func() time.Time { return time.Unix(1767619845, 123456000) }

	res, err := u.Store("photo.png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	want := "1767619845.123456_photo.png"
	if res.Filename != want {
		t.Errorf("filename = %q, want %q", res.Filename, want)
	}
	if res.URL != "/uploads/"+want {
		t.Errorf("url = %q", res.URL)
	}

	data, err := os.ReadFile(filepath.Join(u.Dir(), res.Filename))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("stored bytes = %q", data)
	}
}

func TestStoreSameNameTwiceDistinct(t *testing.T) {
	u := newTestUploader(t)

	base := time.Unix(1767619845, 0)
	calls := 0
	u.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}

	a, err := u.Store("photo.png", strings.NewReader("one"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := u.Store("photo.png", strings.NewReader("two"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Filename == b.Filename {
		t.Errorf("repeated uploads collided on %q", a.Filename)
	}
}

func TestOpenBlocksTraversal(t *testing.T) {
	u := newTestUploader(t)

	// A secret outside the upload dir must not be reachable.
	secret := filepath.Join(filepath.Dir(u.Dir()), "secret.txt")
	if err := os.WriteFile(secret, []byte("s"), 0o644); err != nil {
		t.Fatal(err)
	}

	if f, err := u.Open("../secret.txt"); err == nil {
		f.Close()
		t.Error("traversal name opened a file outside the upload dir")
	}
}
