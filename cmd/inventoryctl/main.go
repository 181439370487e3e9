// Command inventoryctl runs the operational tasks of the inventory database:
// schema migrations, CSV seeding, backup archives and derived-column rebuilds.
package main

import (
	"fmt"
	"os"

	"github.com/fcinventory/backend/internal/infrastructure/config"
	"github.com/fcinventory/backend/internal/infrastructure/logger"
	"github.com/fcinventory/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "0.1.0"

// env is the loaded configuration and logger shared by every command
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	app := newApp(&env{})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "inventoryctl:", err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:    "inventoryctl",
		Usage:   "Manage the inventory database",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a config.toml (default: ./config.toml or /etc/fcinventory/config.toml)",
				EnvVars: []string{"INV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Before: e.load,
		After:  e.close,
		Commands: []*cli.Command{
			migrateCommand(e),
			seedCommand(e),
			backupCommand(e),
			recomputeCommand(e),
		},
	}
}

func (e *env) load(c *cli.Context) error {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return err
	}
	log, err := logger.New(&logger.Config{
		Level:      c.String("log-level"),
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.cfg = cfg
	e.log = log
	return nil
}

func (e *env) close(*cli.Context) error {
	if e.log != nil {
		_ = e.log.Sync()
	}
	return nil
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "sqlite database file, overriding database.file",
	}
}

// database applies the --db override and returns the effective database settings
func (e *env) database(c *cli.Context) *config.DatabaseConfig {
	db := e.cfg.Database
	if path := c.String("db"); path != "" {
		db.Driver = "sqlite"
		db.File = path
	}
	return &db
}

func (e *env) open(c *cli.Context) (*persistence.Database, error) {
	return persistence.NewDatabase(e.database(c), e.log)
}
