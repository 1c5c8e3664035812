package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tidystreak/internal/cli"
	"github.com/julianstephens/tidystreak/internal/storage"
)

// migrator is implemented by the SQL stores
type migrator interface {
	Migrate(logFn func(string)) (int, error)
	PendingMigrations() (int, error)
	ValidateSchema() error
}

var errNoMigrations = errors.New("this storage backend does not support migrations")

func asMigrator(store storage.Provider) (migrator, error) {
	m, ok := store.(migrator)
	if !ok {
		return nil, errNoMigrations
	}
	return m, nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, err := asMigrator(ctx.Store)
	if err != nil {
		return err
	}

	count, err := m.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
