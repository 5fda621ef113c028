package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"notifications",
	"approval_steps",
	"pension_requests",
	"salary_increases",
	"study_permits",
	"leave_requests",
	"leave_quotas",
	"refresh_tokens",
	"users",
	"employees",
}

// openTestDB connects to TEST_DATABASE_URL, applies the schema when missing and
// empties every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, ensureSchema(ctx, db))
	require.NoError(t, truncateAll(ctx, db))
	return db
}

func ensureSchema(ctx context.Context, db *database.DB) error {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT to_regclass('public.approval_steps') IS NOT NULL`).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "001_init.sql")
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	_, err = db.Exec(ctx, string(sql))
	return err
}

func truncateAll(ctx context.Context, db *database.DB) error {
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}
