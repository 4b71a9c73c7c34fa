package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	social "github.com/goliatone/go-social-sdk"
)

func TestFilesystemsReturnsSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 1 {
		t.Fatalf("expected 1 filesystem, got %d", len(filesystems))
	}
	entry := filesystems[0]
	if entry.Dialect != DialectSQLite {
		t.Fatalf("expected sqlite filesystem, got %q", entry.Dialect)
	}
	matches, globErr := fs.Glob(entry.FS, "*.up.sql")
	if globErr != nil {
		t.Fatalf("glob: %v", globErr)
	}
	if len(matches) == 0 {
		t.Fatalf("expected migration files, got none")
	}
}

func TestRegisterUsesValidationTargets(t *testing.T) {
	var calls []string
	_, err := Register(context.Background(), func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		calls = append(calls, dialect)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
}

func TestRegisterRequiresCallback(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected an error without a register function")
	}
}

func TestSessionMigrationPairExists(t *testing.T) {
	root := social.GetCoreMigrationsFS()
	paths := []string{
		"data/sql/migrations/sqlite/20240101000000_create_sdk_sessions.up.sql",
		"data/sql/migrations/sqlite/20240101000000_create_sdk_sessions.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}
