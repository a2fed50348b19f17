package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"stockd/config"
	"stockd/internal/app"
	"stockd/internal/inventory"
	"stockd/internal/menu"
)

func main() {
	cliApp := &cli.App{
		Name:  "stockd",
		Usage: "inventory manager with an append-only audit trail",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
			},
		},
		Action: runMenu,
		Commands: []*cli.Command{
			{
				Name:   "initdb",
				Usage:  "drop and recreate the database schema",
				Action: runInitDB,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*app.Application, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func runMenu(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Release()

	store := inventory.NewStore(application.DB(), application.Bus(), zap.L().Named("store"))

	subscribeLowStockNotifier(application)

	m := menu.New(store, os.Stdin, os.Stdout, application.Config().System.Workdir)
	return m.Run(context.Background())
}

func runInitDB(c *cli.Context) error {
	application, err := setup(c)
	if err != nil {
		return err
	}
	defer application.Release()

	if err := application.InitDb(); err != nil {
		return err
	}
	zap.L().Info("database schema recreated")
	return nil
}

// subscribeLowStockNotifier warns when a movement leaves a product at or
// below the configured threshold.
func subscribeLowStockNotifier(application *app.Application) {
	threshold := application.Config().Inventory.LowStockThreshold
	if threshold <= 0 {
		return
	}
	_ = application.Bus().Subscribe(inventory.TopicStockMoved, func(event inventory.ChangeEvent) {
		if event.Quantity <= threshold {
			zap.L().Warn("low stock",
				zap.Int64("product_id", event.ProductID),
				zap.String("name", event.Name),
				zap.Int("quantity", event.Quantity),
				zap.Int("threshold", threshold))
		}
	})
}
