package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fcinventory/backend/internal/infrastructure/migration"
	"github.com/fcinventory/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const migrationsRoot = "internal/infrastructure/migration/sql"

func migrateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or inspect schema migrations",
		Flags: []cli.Flag{dbFlag()},
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: e.withMigrator(func(_ *cli.Context, m *migration.Migrator) error {
					return m.Up()
				}),
			},
			{
				Name:  "down",
				Usage: "Roll back every migration",
				Action: e.withMigrator(func(_ *cli.Context, m *migration.Migrator) error {
					return m.Down()
				}),
			},
			{
				Name:      "steps",
				Usage:     "Apply N migrations (negative rolls back)",
				ArgsUsage: "N",
				Action: e.withMigrator(func(c *cli.Context, m *migration.Migrator) error {
					n, err := intArg(c, "N")
					if err != nil {
						return err
					}
					return m.Steps(n)
				}),
			},
			{
				Name:  "version",
				Usage: "Print the applied version",
				Action: e.withMigrator(func(c *cli.Context, m *migration.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "version=%d dirty=%t\n", v, dirty)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "Set the version without running migrations",
				ArgsUsage: "V",
				Action: e.withMigrator(func(c *cli.Context, m *migration.Migrator) error {
					v, err := intArg(c, "V")
					if err != nil {
						return err
					}
					return m.Force(v)
				}),
			},
			{
				Name:  "list",
				Usage: "List the migration files of one dialect",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Migrations root", Value: migrationsRoot},
					&cli.StringFlag{Name: "dialect", Usage: "sqlite or postgres", Value: "sqlite"},
				},
				Action: func(c *cli.Context) error {
					names, err := migration.ListMigrations(filepath.Join(c.String("dir"), c.String("dialect")))
					if err != nil {
						return err
					}
					for _, n := range names {
						fmt.Fprintln(c.App.Writer, n)
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create an empty up/down pair for every dialect",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Migrations root", Value: migrationsRoot},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected a migration name")
					}
					files, err := migration.CreateMigration(c.String("dir"), c.Args().First())
					if err != nil {
						return err
					}
					for _, f := range files {
						e.log.Info("Migration created",
							zap.String("dialect", f.Dialect),
							zap.Uint("version", f.Version),
							zap.String("up_file", f.UpPath),
							zap.String("down_file", f.DownPath))
					}
					return nil
				},
			},
		},
	}
}

// withMigrator opens a dedicated handle for fn; closing the migrator closes it.
func (e *env) withMigrator(fn func(*cli.Context, *migration.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dbCfg := e.database(c)
		sqlDB, err := persistence.OpenConfiguredSQL(dbCfg)
		if err != nil {
			return err
		}
		m, err := migration.New(sqlDB, dbCfg.Driver, e.log)
		if err != nil {
			_ = sqlDB.Close()
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				e.log.Warn("Error closing migrator", zap.Error(err))
			}
		}()
		return fn(c, m)
	}
}

func intArg(c *cli.Context, name string) (int, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected one argument %s", name)
	}
	n, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, nil
}
