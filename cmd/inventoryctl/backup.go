package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fcinventory/backend/internal/application/backup"
	"github.com/fcinventory/backend/internal/infrastructure/persistence"
	"github.com/fcinventory/backend/internal/infrastructure/storage"
	"github.com/urfave/cli/v2"
)

var errStorageNotConfigured = errors.New("storage.bucket is not configured")

func backupCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Write every table as CSV into a zip archive",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{
				Name:  "dest",
				Usage: "Directory receiving the archive (default: backup.dest_dir)",
			},
			&cli.BoolFlag{
				Name:  "upload",
				Usage: "Upload the archive to the configured bucket",
			},
		},
		Action: func(c *cli.Context) error {
			dest := c.String("dest")
			if dest == "" {
				dest = e.cfg.Backup.DestDir
			}

			sqlDB, err := persistence.OpenConfiguredSQL(e.database(c))
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			opts := []backup.Option{backup.WithLogger(e.log)}
			if c.Bool("upload") {
				store, err := e.archiveStore(c)
				if err != nil {
					return err
				}
				if err := store.EnsureBucket(c.Context); err != nil {
					return err
				}
				opts = append(opts, backup.WithUploader(store))
			}

			svc := backup.NewService(persistence.NewTableDumper(sqlDB), persistence.BackupTables, opts...)
			result, err := svc.Run(c.Context, dest)
			if result != nil {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				_ = enc.Encode(result)
			}
			return err
		},
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the archives stored in the bucket",
				Action: func(c *cli.Context) error {
					store, err := e.archiveStore(c)
					if err != nil {
						return err
					}
					archives, err := store.ListArchives(c.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "KEY\tSIZE\tMODIFIED")
					for _, a := range archives {
						fmt.Fprintf(tw, "%s\t%d\t%s\n", a.Key, a.Size, a.LastModified.Format(time.RFC3339))
					}
					return tw.Flush()
				},
			},
		},
	}
}

func (e *env) archiveStore(c *cli.Context) (*storage.S3ArchiveStore, error) {
	if !e.cfg.StorageEnabled() {
		return nil, errStorageNotConfigured
	}
	return storage.NewS3ArchiveStore(c.Context, &e.cfg.Storage, storage.WithLogger(e.log))
}
