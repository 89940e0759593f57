package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CALENDARIO_DATA_FILE", "CALENDARIO_UPLOAD_DIR", "CALENDARIO_HTTP_ADDR",
		"CALENDARIO_BACKUP_INTERVAL", "CALENDARIO_BACKUP_S3_REGION",
	} {
		t.Setenv(key, "")
	}

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataFile != "data.json" {
		t.Errorf("DataFile = %q", c.DataFile)
	}
	if c.UploadDir != "uploads" {
		t.Errorf("UploadDir = %q", c.UploadDir)
	}
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.BackupInterval != 0 {
		t.Errorf("BackupInterval = %v, want disabled", c.BackupInterval)
	}
	if c.BackupS3Region != "us-east-1" {
		t.Errorf("BackupS3Region = %q", c.BackupS3Region)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CALENDARIO_DATA_FILE", "/var/lib/cal/data.json")
	t.Setenv("CALENDARIO_HTTP_ADDR", ":9000")
	t.Setenv("CALENDARIO_BACKUP_INTERVAL", "5m")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataFile != "/var/lib/cal/data.json" {
		t.Errorf("DataFile = %q", c.DataFile)
	}
	if c.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.BackupInterval != 5*time.Minute {
		t.Errorf("BackupInterval = %v", c.BackupInterval)
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	t.Setenv("CALENDARIO_BACKUP_INTERVAL", "not-a-duration")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid interval")
	}
}

func TestLoadTOMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendario.toml")
	body := "data_file = \"from-file.json\"\nhttp_addr = \":7070\"\nnats_url = \"nats://file:4222\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CALENDARIO_HTTP_ADDR", ":9999")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataFile != "from-file.json" {
		t.Errorf("DataFile = %q, want value from file", c.DataFile)
	}
	if c.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want env to beat file", c.HTTPAddr)
	}
	if c.NATSURL != "nats://file:4222" {
		t.Errorf("NATSURL = %q", c.NATSURL)
	}
}

func TestLoadMissingTOMLFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
}
