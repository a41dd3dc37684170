package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/praynham/taxi-predict/config"
	"github.com/praynham/taxi-predict/dataset"
	"github.com/praynham/taxi-predict/display"
	"github.com/praynham/taxi-predict/etl"
	"github.com/praynham/taxi-predict/export"
	"github.com/praynham/taxi-predict/transformer"
	"github.com/praynham/taxi-predict/trip"
	"github.com/praynham/taxi-predict/tripstore"
)

func main() {
	cfg := config.Load()

	if cfg.LogFormat != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:  "illume",
		Usage: "explore and transform the Porto taxi-trip dataset",

		Commands: []*cli.Command{
			displayCommand(cfg),
			sampleCommand(cfg),
			summaryCommand(cfg),
			prepareCommand(cfg),
			importCommand(cfg),
			statsCommand(cfg),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func displayCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "display",
		Usage: "print selected trip entries in readable form",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: cfg.DataFile, Usage: "taxi data CSV file"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of entries to print; 0 prints a spread from the whole file"},
			&cli.IntFlag{Name: "start", Value: 0, Usage: "first entry to print"},
		},
		Action: func(c *cli.Context) error {
			src := dataset.File{Path: c.String("file")}
			xf := transformer.NewTripTransformer(log.Logger)
			count, err := display.Render(src, xf, os.Stdout, display.Options{
				Limit: c.Int("limit"),
				Start: c.Int("start"),
			})
			if err != nil {
				return err
			}
			log.Debug().Int("records", count).Msg("display finished")
			return nil
		},
	}
}

func sampleCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "copy a subset of raw records to a new file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: cfg.DataFile, Usage: "taxi data CSV file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "sample file to write"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of records to copy; 0 copies a spread from the whole file"},
			&cli.IntFlag{Name: "start", Value: 0, Usage: "first record to copy"},
			&cli.BoolFlag{Name: "no-header", Usage: "source file has no header row"},
		},
		Action: func(c *cli.Context) error {
			count, err := dataset.RawSample(
				c.String("file"), c.String("out"),
				c.Int("limit"), c.Int("start"), !c.Bool("no-header"),
			)
			if err != nil {
				return err
			}
			log.Info().Int("records", count).Str("out", c.String("out")).Msg("sample written")
			return nil
		},
	}
}

func summaryCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "write a flat summary file with derived trip metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: cfg.DataFile, Usage: "taxi data CSV file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "summary file to write"},
			&cli.IntFlag{Name: "limit", Value: 0, Usage: "stop after this many source records"},
			&cli.IntFlag{Name: "sample", Value: 1, Usage: "write every sample-th record, e.g. 100 for a 1% sample"},
		},
		Action: func(c *cli.Context) error {
			out, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create summary file: %w", err)
			}
			defer out.Close()

			src := dataset.File{Path: c.String("file")}
			xf := transformer.NewTripTransformer(log.Logger)
			count, err := export.Summary(src, xf, out, export.Options{
				Limit:  c.Int("limit"),
				Sample: c.Int("sample"),
			})
			if err != nil {
				return err
			}
			log.Info().Int("records", count).Str("out", c.String("out")).Msg("summary written")
			return nil
		},
	}
}

func prepareCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "prepare",
		Usage: "write an enriched file for statistical analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: cfg.DataFile, Usage: "taxi data CSV file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "prepared file to write"},
			&cli.IntFlag{Name: "limit", Value: 0, Usage: "stop after this many output records"},
			&cli.IntFlag{Name: "sample", Value: 1, Usage: "write every sample-th record, e.g. 100 for a 1% sample"},
		},
		Action: func(c *cli.Context) error {
			out, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create prepared file: %w", err)
			}
			defer out.Close()

			src := dataset.File{Path: c.String("file")}
			xf := transformer.NewTripTransformer(log.Logger)
			count, tally, err := export.Prepare(src, xf, out, export.Options{
				Limit:  c.Int("limit"),
				Sample: c.Int("sample"),
			})
			if err != nil {
				return err
			}

			log.Info().Int("records", count).Str("out", c.String("out")).Msg("prepared file written")
			for o := trip.Accepted; o <= trip.TooFast; o++ {
				log.Info().Int("trips", tally[o]).Msg(o.Reason())
			}
			return nil
		},
	}
}

func importCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load derived trip records into the trip database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: cfg.DataFile, Usage: "taxi data CSV file"},
			&cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "database file path"},
			&cli.IntFlag{Name: "limit", Value: 0, Usage: "stop after this many records"},
			&cli.IntFlag{Name: "sample", Value: 1, Usage: "keep every sample-th record"},
		},
		Action: func(c *cli.Context) error {
			repo, err := tripstore.NewTripStore(c.String("db"))
			if err != nil {
				return err
			}
			defer repo.Close()

			p := etl.NewPipeline(
				dataset.File{Path: c.String("file")},
				transformer.NewTripTransformer(log.Logger),
				repo,
				log.Logger,
			)
			p.Limit = c.Int("limit")
			p.Sample = c.Int("sample")
			return p.Run()
		},
	}
}

func statsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "report aggregate statistics from the trip database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "database file path"},
			&cli.IntFlag{Name: "top", Value: 10, Usage: "number of longest trips to list"},
		},
		Action: func(c *cli.Context) error {
			repo, err := tripstore.NewTripStore(c.String("db"))
			if err != nil {
				return err
			}
			defer repo.Close()

			stats, err := repo.GetSummaryStats()
			if err != nil {
				return fmt.Errorf("stats query failed: %w", err)
			}

			fmt.Println("\nTAXI TRIP SUMMARY STATISTICS")
			fmt.Printf("   Total Trips: %v\n", stats["total_trips"])
			fmt.Printf("   Accepted: %v (%v)\n", stats["accepted_trips"], stats["percent_accepted"])
			fmt.Printf("   Missing GPS Data: %v\n", stats["missing_data_trips"])
			fmt.Printf("   Avg Drive Distance: %v\n", stats["avg_drive_km"])
			fmt.Printf("   Max Drive Distance: %v\n", stats["max_drive_km"])
			fmt.Printf("   Avg Speed (accepted): %v\n", stats["avg_speed_accepted"])
			fmt.Printf("   Max Speed (accepted): %v\n", stats["max_speed_accepted"])

			outliers, err := repo.GetOutlierBreakdown()
			if err != nil {
				return fmt.Errorf("outlier query failed: %w", err)
			}
			fmt.Println("\nDATA-QUALITY BREAKDOWN")
			fmt.Printf("%-20s %10s %15s %15s\n", "Class", "Count", "Avg Drive", "Avg Time")
			for _, row := range outliers {
				fmt.Printf("%-20s %10v %12v km %15v\n",
					row["outlier"], row["count"], row["avg_drive_km"], row["avg_trip_time"])
			}

			days, err := repo.GetDayBreakdown()
			if err != nil {
				return fmt.Errorf("day query failed: %w", err)
			}
			fmt.Println("\nDAY-CLASS BREAKDOWN")
			fmt.Printf("%-20s %10s %15s %15s\n", "Day", "Count", "Avg Drive", "Avg Speed")
			for _, row := range days {
				fmt.Printf("%-20s %10v %12v km %15v\n",
					row["day_busy"], row["count"], row["avg_drive_km"], row["avg_speed"])
			}

			longest, err := repo.GetLongestTrips(c.Int("top"))
			if err != nil {
				return fmt.Errorf("longest-trips query failed: %w", err)
			}
			fmt.Printf("\nTOP %d LONGEST TRIPS\n", c.Int("top"))
			for i, t := range longest {
				fmt.Printf("%d. Trip %s (taxi %s) - %.3f km driven in %.2f min, %s\n",
					i+1, t.TripID, t.TaxiID, t.DriveDist/1000, t.TripTime, t.Outlier)
			}
			fmt.Println()

			return nil
		},
	}
}
