// Package config loads server configuration from an optional TOML file and
// the environment. Environment variables always win over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DataFile  string // CALENDARIO_DATA_FILE (default "data.json")
	UploadDir string // CALENDARIO_UPLOAD_DIR (default "uploads")
	HTTPAddr  string // CALENDARIO_HTTP_ADDR (default ":8080")

	DatabaseURL string // CALENDARIO_DATABASE_URL (optional; selects the Postgres store)
	NATSURL     string // CALENDARIO_NATS_URL (optional, empty = no events)

	// Backup settings
	BackupInterval   time.Duration // CALENDARIO_BACKUP_INTERVAL (default 0 = disabled)
	BackupS3Bucket   string        // CALENDARIO_BACKUP_S3_BUCKET (enables S3 when set)
	BackupS3Endpoint string        // CALENDARIO_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	BackupS3Region   string        // CALENDARIO_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Key      string        // CALENDARIO_BACKUP_S3_KEY (default "calendario/data.json")
}

// fileConfig mirrors Config for the optional TOML file.
type fileConfig struct {
	DataFile  string `toml:"data_file,omitempty"`
	UploadDir string `toml:"upload_dir,omitempty"`
	HTTPAddr  string `toml:"http_addr,omitempty"`

	DatabaseURL string `toml:"database_url,omitempty"`
	NATSURL     string `toml:"nats_url,omitempty"`

	BackupInterval   string `toml:"backup_interval,omitempty"`
	BackupS3Bucket   string `toml:"backup_s3_bucket,omitempty"`
	BackupS3Endpoint string `toml:"backup_s3_endpoint,omitempty"`
	BackupS3Region   string `toml:"backup_s3_region,omitempty"`
	BackupS3Key      string `toml:"backup_s3_key,omitempty"`
}

// Load reads the TOML file at path (when non-empty and present) and applies
// environment overrides on top.
func Load(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		if _, err := toml.DecodeFile(path, &fc); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	c := &Config{
		DataFile:         firstNonEmpty(os.Getenv("CALENDARIO_DATA_FILE"), fc.DataFile, "data.json"),
		UploadDir:        firstNonEmpty(os.Getenv("CALENDARIO_UPLOAD_DIR"), fc.UploadDir, "uploads"),
		HTTPAddr:         firstNonEmpty(os.Getenv("CALENDARIO_HTTP_ADDR"), fc.HTTPAddr, ":8080"),
		DatabaseURL:      firstNonEmpty(os.Getenv("CALENDARIO_DATABASE_URL"), fc.DatabaseURL, ""),
		NATSURL:          firstNonEmpty(os.Getenv("CALENDARIO_NATS_URL"), fc.NATSURL, ""),
		BackupS3Bucket:   firstNonEmpty(os.Getenv("CALENDARIO_BACKUP_S3_BUCKET"), fc.BackupS3Bucket, ""),
		BackupS3Endpoint: firstNonEmpty(os.Getenv("CALENDARIO_BACKUP_S3_ENDPOINT"), fc.BackupS3Endpoint, ""),
		BackupS3Region:   firstNonEmpty(os.Getenv("CALENDARIO_BACKUP_S3_REGION"), fc.BackupS3Region, "us-east-1"),
		BackupS3Key:      firstNonEmpty(os.Getenv("CALENDARIO_BACKUP_S3_KEY"), fc.BackupS3Key, "calendario/data.json"),
	}

	intervalStr := firstNonEmpty(os.Getenv("CALENDARIO_BACKUP_INTERVAL"), fc.BackupInterval, "")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("CALENDARIO_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}

	return c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
