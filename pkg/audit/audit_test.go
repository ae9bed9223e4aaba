// SPDX-License-Identifier: AGPL-3.0-or-later

package audit_test

import (
	"context"
	"os"
	"testing"
	"time"

	"routeforge/pkg/audit"
)

// TestStore_WriteRecord exercises Open/Write/Close against a real
// Postgres instance. Skipped unless ROUTEFORGE_TEST_AUDIT_DSN is set,
// since routeforge's test suite otherwise has no database dependency.
func TestStore_WriteRecord(t *testing.T) {
	dsn := os.Getenv("ROUTEFORGE_TEST_AUDIT_DSN")
	if dsn == "" {
		t.Skip("ROUTEFORGE_TEST_AUDIT_DSN not set, skipping audit store test")
	}

	ctx := context.Background()
	store, err := audit.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	rec := audit.Record{
		Timestamp:       time.Now(),
		InputFormat:     "docker-compose",
		OutputFormat:    "traefik-dynamic",
		DiagnosticCount: 2,
		ErrorCount:      0,
	}
	if err := store.Write(ctx, rec); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
}
