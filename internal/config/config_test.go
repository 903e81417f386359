package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("Port = %q, want 8082", cfg.Port)
	}
	if cfg.WeekStartDay != time.Monday {
		t.Errorf("WeekStartDay = %v, want Monday", cfg.WeekStartDay)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.SyncBatchSize != 10 {
		t.Errorf("SyncBatchSize = %d, want 10", cfg.SyncBatchSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadWeekStartDay(t *testing.T) {
	t.Setenv("WEEK_START_DAY", "sunday")
	if cfg := Load(); cfg.WeekStartDay != time.Sunday {
		t.Errorf("WeekStartDay = %v, want Sunday", cfg.WeekStartDay)
	}

	t.Setenv("WEEK_START_DAY", "Friday")
	if cfg := Load(); cfg.WeekStartDay != time.Friday {
		t.Errorf("WeekStartDay = %v, want Friday (case-insensitive)", cfg.WeekStartDay)
	}

	t.Setenv("WEEK_START_DAY", "someday")
	if cfg := Load(); cfg.WeekStartDay != time.Monday {
		t.Errorf("WeekStartDay = %v, want Monday fallback for unknown name", cfg.WeekStartDay)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = "notaport"
	cfg.DataBackend = "postgres"
	cfg.SyncBatchSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"invalid port", "invalid data backend", "invalid sync batch size"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation message missing %q: %s", want, msg)
		}
	}
}

func TestValidateDoesNotTouchFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")

	cfg := Load()
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = filepath.Join(dir, "budget.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("missing db directory should not fail validation: %v", err)
	}
	// creating the directory is the repository's job, not the validator's
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Validate created %s", dir)
	}

	cfg.SQLiteDBPath = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "path cannot be empty") {
		t.Errorf("expected empty-path error, got %v", err)
	}
}

func TestValidateAMQP(t *testing.T) {
	cfg := Load()
	cfg.AMQPURL = "http://localhost:5672/"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "AMQP URL scheme") {
		t.Errorf("expected scheme error, got %v", err)
	}

	cfg = Load()
	cfg.AMQPQueue = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "queue name") {
		t.Errorf("expected queue error, got %v", err)
	}

	cfg = Load()
	cfg.AMQPURL = ""
	cfg.AMQPQueue = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("AMQP disabled should not require queue: %v", err)
	}
}

func TestValidateSpreadsheetBackup(t *testing.T) {
	cfg := Load()
	cfg.GoogleSpreadsheetID = "sheet-id"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error: backup enabled without sheet name or credentials")
	}
	if !strings.Contains(err.Error(), "sheet name") || !strings.Contains(err.Error(), "GOOGLE_CREDENTIALS") {
		t.Errorf("unexpected message: %v", err)
	}

	cfg.GoogleSheetName = "Entries"
	cfg.GoogleCredentialsJSON = "{}"
	if err := cfg.Validate(); err != nil {
		t.Errorf("inline credentials should validate: %v", err)
	}
}
