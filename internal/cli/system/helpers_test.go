package system

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tidystreak/internal/app"
	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/models"
	"github.com/julianstephens/tidystreak/internal/notifier"
	"github.com/julianstephens/tidystreak/internal/storage/sqlite"
)

var testNow = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

// newTestContext returns a context over an uninitialized SQLite store
func newTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	n := 0
	return &cli.Context{
		Store: store,
		App: app.New(store, notifier.NewQueue(store),
			app.WithClock(func() time.Time { return testNow }),
			app.WithIDs(func() string {
				n++
				return fmt.Sprintf("id-%d", n)
			}),
		),
	}, dbPath
}

// setupTestDB returns a context over an initialized store in UTC
func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	ctx, dbPath := newTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	return ctx, dbPath
}
