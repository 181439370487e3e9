package main

import (
	"fmt"

	catalogapp "github.com/fcinventory/backend/internal/application/catalog"
	salesapp "github.com/fcinventory/backend/internal/application/sales"
	"github.com/fcinventory/backend/internal/infrastructure/persistence"
	"github.com/urfave/cli/v2"
)

func recomputeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "recompute",
		Usage: "Rebuild every product fullname and sale sold_price",
		Flags: []cli.Flag{dbFlag()},
		Action: func(c *cli.Context) error {
			db, err := e.open(c)
			if err != nil {
				return err
			}
			defer db.Close()

			productRepo := persistence.NewGormProductRepository(db.DB)
			saleRepo := persistence.NewGormSaleRepository(db.DB)
			products := catalogapp.NewProductService(productRepo, persistence.NewGormTagRepository(db.DB))
			sales := salesapp.NewSaleService(saleRepo, persistence.NewGormStaffRepository(db.DB))

			n, err := products.RecomputeFullnames(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "fullnames: %d products\n", n)

			n, err = sales.RecomputeSoldPrices(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "sold prices: %d sales\n", n)
			return nil
		},
	}
}
