package main

import (
	"encoding/json"

	catalogapp "github.com/fcinventory/backend/internal/application/catalog"
	salesapp "github.com/fcinventory/backend/internal/application/sales"
	"github.com/fcinventory/backend/internal/application/seed"
	"github.com/fcinventory/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func seedCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load Suppliers.csv, Categories.csv, Products.csv and Staff.csv into an empty database",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{
				Name:  "sources",
				Usage: "Directory holding the CSV exports (default: seed.sources_dir)",
			},
		},
		Action: func(c *cli.Context) error {
			dir := c.String("sources")
			if dir == "" {
				dir = e.cfg.Seed.SourcesDir
			}

			db, err := e.open(c)
			if err != nil {
				return err
			}
			defer db.Close()

			tagRepo := persistence.NewGormTagRepository(db.DB)
			saleRepo := persistence.NewGormSaleRepository(db.DB)
			svc := seed.NewService(
				catalogapp.NewSupplierService(persistence.NewGormSupplierRepository(db.DB)),
				catalogapp.NewTagService(tagRepo),
				catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), tagRepo),
				salesapp.NewStaffService(persistence.NewGormStaffRepository(db.DB), saleRepo),
				db,
				e.log,
			)

			report, err := svc.Run(c.Context, dir)
			if report != nil {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				_ = enc.Encode(report)
			}
			if err != nil {
				return err
			}
			if failed := report.Failed(); failed > 0 {
				e.log.Warn("Seed finished with rejected rows", zap.Int("failed", failed))
			}
			return nil
		},
	}
}
