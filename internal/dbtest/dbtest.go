// Package dbtest contains supporting code for running tests that hit the DB.
package dbtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-manager/internal/db"
)

type dbContainer struct {
	Container  *postgres.PostgresContainer
	ConnString string
}

func (c *dbContainer) DumpLogs() string {
	logs, err := c.Container.Logs(context.Background())
	if err != nil {
		return fmt.Sprintf("failed to dump container logs: %v", err)
	}
	b, err := io.ReadAll(logs)
	if err != nil {
		return fmt.Sprintf("failed to read container logs: %v", err)
	}
	return string(b)
}

func (c *dbContainer) shutdown() error {
	return c.Container.Terminate(context.Background())
}

func startDB(ctx context.Context) (*dbContainer, error) {
	c, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("groomer"),
		postgres.WithUsername("groomer"),
		postgres.WithPassword("groomer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("run container: %w", err)
	}

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("conn string: %w", err)
	}

	return &dbContainer{Container: c, ConnString: connStr}, nil
}

// NewUnit starts a migrated postgres in a container. It skips under -short.
// The returned function tears everything down.
func NewUnit(t *testing.T) (*slog.Logger, *gorm.DB, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c, err := startDB(ctx)
	if err != nil {
		t.Fatalf("starting DB container: %v", err)
	}

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	database, err := db.Open(c.ConnString)
	if err != nil {
		t.Logf("Logs for %s\n%s:", c.Container.GetContainerID(), c.DumpLogs())
		t.Fatalf("opening database connection: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	t.Log("Ready for testing...")

	teardown := func() {
		if r := recover(); r != nil {
			t.Log(r)
			t.Error(string(debug.Stack()))
		}

		t.Helper()
		_ = db.Close(database)
		_ = c.shutdown()

		t.Log("******************** LOGS ********************")
		t.Log(buf.String())
	}

	return log, database, teardown
}
