// LoadDeck - trailer floor planner
//
// Reads free-text cargo lines (one per client), extracts the footprints and
// plans them onto a single trailer floor.
//
// Usage:
//   loaddeck [flags] [file]
//   echo "Client1 #2 300x200x150" | loaddeck
//   loaddeck -xlsx orders.xlsx -column "Seller remark" -pdf plan.pdf
//   loaddeck -import-inventory fleet.json
//   loaddeck -trailer "mega trailer" -strategy pak-bottom-left -save-config
//
// Build:
//   go build -o loaddeck ./cmd/loaddeck

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/LoadDeck/internal/engine"
	"github.com/piwi3910/LoadDeck/internal/export"
	"github.com/piwi3910/LoadDeck/internal/importer"
	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/project"
	"github.com/piwi3910/LoadDeck/internal/render"
)

type options struct {
	xlsx, csv, column string

	trailer, inventory string
	length, width      float64
	strategy           string
	compare            bool

	pdf, labels, excel, dxf, svg, chart string
	json                                bool
	config                              string

	importInventory string
	saveConfig      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("loaddeck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.xlsx, "xlsx", "", "read cargo lines from an Excel workbook")
	fs.StringVar(&o.csv, "csv", "", "read cargo lines from a CSV file")
	fs.StringVar(&o.column, "column", "", "header of the column holding the cargo text (Excel/CSV)")

	fs.StringVar(&o.trailer, "trailer", "", "trailer preset name or id from the inventory")
	fs.StringVar(&o.inventory, "inventory", "", "inventory file (default ~/.loaddeck/inventory.json)")
	fs.Float64Var(&o.length, "length", 0, "trailer floor length in meters, overrides the preset")
	fs.Float64Var(&o.width, "width", 0, "trailer floor width in meters, overrides the preset")
	fs.StringVar(&o.strategy, "strategy", "", "packing strategy (see -compare for the list)")
	fs.BoolVar(&o.compare, "compare", false, "run every strategy and keep the best layout")

	fs.StringVar(&o.pdf, "pdf", "", "write a PDF load sheet")
	fs.StringVar(&o.labels, "labels", "", "write a PDF of QR item labels")
	fs.StringVar(&o.excel, "excel", "", "write an Excel workbook")
	fs.StringVar(&o.dxf, "dxf", "", "write a DXF floor drawing")
	fs.StringVar(&o.svg, "svg", "", "write an SVG floor diagram")
	fs.StringVar(&o.chart, "chart", "", "write an HTML chart of floor area per client")
	fs.BoolVar(&o.json, "json", false, "print the plan as JSON instead of the text report")
	fs.StringVar(&o.config, "config", "", "config file (default ~/.loaddeck/config.json)")
	fs.StringVar(&o.importInventory, "import-inventory", "", "merge trailer presets from a JSON file into the inventory and exit")
	fs.BoolVar(&o.saveConfig, "save-config", false, "save the effective trailer and strategy as config defaults and exit")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, settings, err := loadSettings(o)
	if err != nil {
		fmt.Fprintf(stderr, "loaddeck: %v\n", err)
		return 2
	}

	if o.importInventory != "" || o.saveConfig {
		if err := maintain(o, cfg, settings, stderr); err != nil {
			fmt.Fprintf(stderr, "loaddeck: %v\n", err)
			return 1
		}
		return 0
	}

	items, err := readItems(o, rest, stdin, stderr, settings)
	if err != nil {
		fmt.Fprintf(stderr, "loaddeck: %v\n", err)
		return 1
	}
	if len(items) == 0 {
		fmt.Fprintf(stderr, "loaddeck: %v\n", engine.ErrNoItems)
		return 1
	}

	result, err := plan(o, items, settings, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "loaddeck: %v\n", err)
		return 2
	}

	if o.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "loaddeck: %v\n", err)
			return 1
		}
	} else {
		fmt.Fprint(stdout, render.Text(result))
		est := model.EstimateLoad(items, settings.Trailer)
		fmt.Fprintf(stdout, "\nCargo footprint: %.2f m² (%.1f%% of floor, at least %.2f loading meters)\n",
			est.TotalFloorArea, est.FillPercent, est.MinLoadingMeters)
	}

	if err := writeExports(o, result, cfg); err != nil {
		fmt.Fprintf(stderr, "loaddeck: %v\n", err)
		return 1
	}
	return 0
}

// loadSettings builds the planning settings from the config file, the
// trailer inventory and the command line, in that order.
func loadSettings(o options) (model.AppConfig, model.Settings, error) {
	cfg, err := project.LoadAppConfig(configPath(o))
	if err != nil {
		return cfg, model.Settings{}, err
	}
	settings := cfg.Settings()

	if o.trailer != "" {
		var inv model.Inventory
		if o.inventory != "" {
			inv, err = project.LoadInventory(o.inventory)
		} else {
			inv, _, err = project.LoadOrCreateInventory()
		}
		if err != nil {
			return cfg, settings, err
		}
		preset, ok := inv.FindTrailer(o.trailer)
		if !ok {
			return cfg, settings, fmt.Errorf("unknown trailer %q (have %v)", o.trailer, inv.TrailerNames())
		}
		settings.Trailer = preset.ToTrailer()
	}

	if o.length > 0 {
		settings.Trailer.Length = o.length
		settings.Trailer.Name = "Custom"
	}
	if o.width > 0 {
		settings.Trailer.Width = o.width
		settings.Trailer.Name = "Custom"
	}
	if o.strategy != "" {
		settings.Strategy = o.strategy
	}
	return cfg, settings, nil
}

func configPath(o options) string {
	if o.config != "" {
		return o.config
	}
	return project.DefaultConfigPath()
}

func inventoryPath(o options) (string, error) {
	if o.inventory != "" {
		return o.inventory, nil
	}
	return project.DefaultInventoryPath()
}

// maintain runs the inventory import and config save requested on the
// command line. No planning happens in this mode.
func maintain(o options, cfg model.AppConfig, settings model.Settings, stderr io.Writer) error {
	if o.importInventory != "" {
		path, err := inventoryPath(o)
		if err != nil {
			return err
		}
		inv, err := project.LoadInventory(path)
		if err != nil {
			return err
		}
		merged, err := project.ImportInventory(o.importInventory, inv)
		if err != nil {
			return fmt.Errorf("import inventory: %w", err)
		}
		if err := project.SaveInventory(path, merged); err != nil {
			return fmt.Errorf("save inventory: %w", err)
		}
		fmt.Fprintf(stderr, "imported %d trailer presets into %s\n", len(merged.Trailers)-len(inv.Trailers), path)
	}

	if o.saveConfig {
		if _, err := engine.NewWithStrategy(settings, settings.Strategy); err != nil {
			return err
		}
		cfg.DefaultTrailer = settings.Trailer
		cfg.DefaultStrategy = settings.Strategy
		path := configPath(o)
		if err := project.SaveAppConfig(path, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(stderr, "saved config to %s\n", path)
	}
	return nil
}

func readItems(o options, rest []string, stdin io.Reader, stderr io.Writer, settings model.Settings) ([]model.CargoItem, error) {
	var res importer.ImportResult
	switch {
	case o.xlsx != "":
		res = importer.ImportExcel(o.xlsx, o.column, settings)
	case o.csv != "":
		res = importer.ImportCSV(o.csv, o.column, settings)
	default:
		in := stdin
		if len(rest) > 0 {
			f, err := os.Open(rest[0])
			if err != nil {
				return nil, err
			}
			defer f.Close()
			in = f
		}
		return importer.ParseReader(in, settings)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if len(res.Errors) > 0 {
		return nil, errors.New(res.Errors[0])
	}
	return res.Items, nil
}

func plan(o options, items []model.CargoItem, settings model.Settings, stderr io.Writer) (model.PlanResult, error) {
	if !o.compare {
		p, err := engine.NewWithStrategy(settings, settings.Strategy)
		if err != nil {
			return model.PlanResult{}, err
		}
		return p.Plan(items), nil
	}

	results, err := engine.CompareStrategies(items, settings, nil)
	if err != nil {
		return model.PlanResult{}, err
	}
	fmt.Fprintf(stderr, "%-24s %7s %7s %8s %7s\n", "strategy", "placed", "left", "ldm", "usage")
	for _, r := range results {
		fmt.Fprintf(stderr, "%-24s %7d %7d %8.2f %6.1f%%\n", r.Strategy, r.PlacedCount, r.UnplacedCount, r.LoadingMeters, r.Efficiency)
	}
	best, _ := engine.BestStrategy(results)
	fmt.Fprintf(stderr, "best: %s\n\n", best.Strategy)
	return best.Result, nil
}

func writeExports(o options, result model.PlanResult, cfg model.AppConfig) error {
	if o.pdf != "" {
		if err := export.ExportPDF(o.pdf, result); err != nil {
			return err
		}
	}
	if o.labels != "" {
		if err := export.ExportLabels(o.labels, result); err != nil {
			return err
		}
	}
	if o.excel != "" {
		if err := export.ExportExcel(o.excel, result); err != nil {
			return err
		}
	}
	if o.dxf != "" {
		if err := export.ExportDXF(o.dxf, result); err != nil {
			return err
		}
	}
	if o.svg != "" {
		if err := os.WriteFile(o.svg, []byte(render.SVG(result)), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	if o.chart != "" {
		f, err := os.Create(o.chart)
		if err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		defer f.Close()
		chartOpts := render.DefaultChartOptions()
		if cfg.ChartTheme != "" {
			chartOpts.Theme = cfg.ChartTheme
		}
		if err := render.Chart(result, chartOpts, f); err != nil {
			return err
		}
	}
	return nil
}
