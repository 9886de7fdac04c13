// Package testutil sets up databases, configuration and fixtures for tests.
package testutil

import (
	"fmt"
	"io"
	"log"
	"net/mail"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/randomize"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/services/logger"
	"github.com/trezcool/studysphere/storage/database"
)

var seed = randomize.NewSeed()

// tables in deletion order
var tables = []string{
	"progresses", "attendances", "grades", "enrollments",
	"student_profiles", "students", "classes", "courses", "teachers", "users",
}

// NewConfig returns the configuration used by tests.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:  "Study Sphere",
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
		BaseURL:  "http://localhost:8000",

		SecretKey:                 "test-secret-key",
		JWTSecretKey:              "test-jwt-secret-key",
		JWTExpirationDelta:        time.Hour,
		JWTRefreshExpirationDelta: 30 * 24 * time.Hour,
		EmailVerifyMaxAge:         time.Hour,

		DefaultFromEmail: mail.Address{Name: "Study Sphere", Address: "no-reply@studysphereapp.com"},

		Server: core.ServerConfig{
			Host:            "localhost",
			Address:         ":8000",
			DebugAddress:    ":4000",
			ShutdownTimeout: time.Second,
			CORSOrigins:     []string{"*"},
			BodyLimit:       "10M",
			DisableReqLogs:  true,
		},
		Database: core.DatabaseConfig{Engine: core.EngineSQLite},
		Storage: core.StorageConfig{
			Provider:     core.StorageDisk,
			UploadFolder: "uploads/students",
		},
	}
}

// NewLogger returns a logger that discards everything.
func NewLogger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), NewConfig())
}

// PrepareDB opens a migrated SQLite database in a temp dir. It is closed when the test ends.
func PrepareDB(t testing.TB) *sqlx.DB {
	t.Helper()

	conf := NewConfig()
	conf.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db.DB, conf.Database.Engine); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// ResetDB deletes every row and resets the id sequences.
func ResetDB(t testing.TB, db *sqlx.DB) {
	t.Helper()

	for _, tbl := range tables {
		if _, err := db.Exec(fmt.Sprintf(`DELETE FROM "%s"`, tbl)); err != nil {
			t.Fatalf("ResetDB() failed: %v", err)
		}
	}
	if _, err := db.Exec(`DELETE FROM sqlite_sequence`); err != nil {
		t.Fatalf("ResetDB() failed: %v", err)
	}
}

// UniqueEmail returns a new email address for every call.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%d@test.cd", strings.ToLower(prefix), seed.NextInt())
}
