package utils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/luxstore/backend/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database with the full schema. A
// single connection keeps sqlite from returning busy errors under the
// concurrent tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:utils_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// captureMail swaps the mail delivery function for one that records
// subjects on a channel, restoring the original when the test ends.
func captureMail(t *testing.T) <-chan string {
	t.Helper()

	ch := make(chan string, 16)
	orig := sendMailFn
	sendMailFn = func(subject, body string, recipients []string) error {
		ch <- subject
		return nil
	}
	t.Cleanup(func() { sendMailFn = orig })
	return ch
}

// waitForMail blocks until a message arrives or the timeout passes
func waitForMail(t *testing.T, ch <-chan string, timeout time.Duration) (string, bool) {
	t.Helper()
	select {
	case subject := <-ch:
		return subject, true
	case <-time.After(timeout):
		return "", false
	}
}
