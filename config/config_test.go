package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
database:
  host: "db"
  port: 5432
  user: "u"
  password: "p"
  name: "airtickets"
  ssl_mode: "disable"
worker:
  audit_sweep_minutes: 5
`)

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 5, cfg.Worker.AuditSweepMinutes)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=airtickets sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_DefaultAuditSweep(t *testing.T) {
	// Missing worker section must not leave a zero ticker interval.
	path := writeConfig(t, `
http:
  address: ":8080"
`)

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, defaultAuditSweepMinutes, cfg.Worker.AuditSweepMinutes)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
