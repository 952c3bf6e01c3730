package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/pkg/logger"
)

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read a local CSV/XLSX export instead of the configured source",
		EnvVars: []string{"SALESCTL_FILE"},
	}
}

func newJSONFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of a table",
	}
}

// withCommonFlags lets --file and --json follow the command name as well as
// precede it.
func withCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{newFileFlag(), newJSONFlag()}, flags...)
}

func newPeriodFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Sales period: 1gun, 1hafta, 1ay, 3ay, 6ay or 1yil",
		Value:   "1ay",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "salesctl",
		Usage: "Inspect the sales spreadsheet and its derived reports",
		Flags: []cli.Flag{
			newFileFlag(),
			newJSONFlag(),
		},
		Before: func(c *cli.Context) error {
			logger.SetOutput(os.Stderr)
			logger.SetLevel(config.Load().Log.Level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Fetch the export and show the load outcome with per-type counts",
				Flags:  withCommonFlags(),
				Action: runLoad,
			},
			{
				Name:  "groups",
				Usage: "List the entities of one type",
				Flags: withCommonFlags(
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Usage:    "Entity type: brand, category, product, customer or channel",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sort-field",
						Usage: "name, total_units or monthly_average",
					},
					&cli.StringFlag{
						Name:  "sort-direction",
						Usage: "asc or desc",
					},
				),
				Action: runGroups,
			},
			{
				Name:  "expiry",
				Usage: "Categorize products by expiry date",
				Flags: withCommonFlags(
					&cli.BoolFlag{
						Name:  "dashboard",
						Usage: "Only show overdue and within-3-months buckets",
					},
				),
				Action: runExpiry,
			},
			{
				Name:  "sales",
				Usage: "Show product sales for a period",
				Flags: withCommonFlags(
					newPeriodFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of products",
					},
				),
				Action: runSales,
			},
			{
				Name:   "levels",
				Usage:  "Show remaining stock per product after a period's sales",
				Flags:  withCommonFlags(newPeriodFlag()),
				Action: runLevels,
			},
		},
	}
}

func main() {
	_ = godotenv.Load(".env")

	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("salesctl failed")
	}
}
