package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/printcraft/storefront/app/configs"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/printcraft/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(env, os.Stdout).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// NewCommand builds the storefront command tree. Running it without a subcommand serves HTTP.
func NewCommand(env configs.ENV, out io.Writer) *cli.Command {
	serve := func(ctx context.Context, c *cli.Command) error {
		return Serve(ctx, env)
	}

	return &cli.Command{
		Name:   "storefront",
		Usage:  "PrintCraft storefront server and tools",
		Writer: out,
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "also write the keys to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.Root().Writer, c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "catalog",
				Usage: "Print the product catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Value: "all", Usage: "basic, premium, oversized or all"},
					&cli.StringFlag{Name: "color", Value: "All", Usage: "only products offered in this color"},
					&cli.StringFlag{Name: "max-price", Usage: "only products at or below this price"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					filter := models.ProductFilter{Type: c.String("type"), Color: c.String("color")}
					if raw := strings.TrimSpace(c.String("max-price")); raw != "" {
						maxPrice, err := decimal.NewFromString(raw)
						if err != nil {
							return fmt.Errorf("invalid --max-price %q: %w", raw, err)
						}
						filter.MaxPrice = &maxPrice
					}
					return printCatalog(ctx, c.Root().Writer, env.CatalogPath, filter)
				},
			},
		},
	}
}

func printCatalog(ctx context.Context, out io.Writer, catalogPath string, filter models.ProductFilter) error {
	repo, err := repositories.NewProductRepository(catalogPath)
	if err != nil {
		return err
	}
	products, err := repo.Filter(ctx, filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tPRICE\tCOLORS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, format.FormatUSD(p.Price), strings.Join(p.Colors, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d products\n", len(products))
	return nil
}
