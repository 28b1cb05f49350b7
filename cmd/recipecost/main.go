// recipecost prices a recipe from an ingredient CSV in the terminal.
//
// Usage:
//
//	recipecost -file ingredientes.csv [-portions 6] [-margin 30] [-locale br|plain] [-bars] [-export out.csv]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Simplici0/recipecost/internal/costing"
	"github.com/Simplici0/recipecost/internal/export"
	"github.com/Simplici0/recipecost/internal/logger"
	"github.com/Simplici0/recipecost/internal/money"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	file     string
	portions int
	margin   float64
	locale   string
	bars     bool
	export   string
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("recipecost", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "ingredient CSV to read (\"-\" for stdin)")
	fs.IntVar(&opts.portions, "portions", 6, "number of portions the recipe yields")
	fs.Float64Var(&opts.margin, "margin", 30, "profit margin as a percentage of the sale price")
	fs.StringVar(&opts.locale, "locale", string(money.ModeBR), "amount format: br or plain")
	fs.BoolVar(&opts.bars, "bars", false, "draw a bar chart of the ingredient costs")
	fs.StringVar(&opts.export, "export", "", "also write the costed rows to this CSV file")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.file == "" {
		return opts, errors.New("-file is required")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	}

	level := logger.LevelNormal
	if opts.verbose {
		level = logger.LevelVerbose
	}
	log := logger.New(level, stderr)

	mode, ok := money.ParseMode(opts.locale)
	if !ok {
		log.Warn("unknown locale %q, using %s", opts.locale, mode)
	}

	records, err := readRecords(opts.file, stdin)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Debug("read %d ingredient rows from %s", len(records), opts.file)

	res, err := costing.Compute(export.Ingredients(records), costing.Params{
		Portions:      opts.portions,
		MarginPercent: opts.margin,
	})
	if errors.Is(err, costing.ErrNoIngredients) {
		fmt.Fprintln(stdout, "Adicione pelo menos um ingrediente para calcular o custo.")
		return 0
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	rep := newReport(stdout, money.NewFormatter(mode))
	rep.write(res, opts.bars)

	if opts.export != "" {
		if err := writeExport(opts.export, res); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Info("exported %d rows to %s", len(res.Lines), opts.export)
	}

	return 0
}

func readRecords(path string, stdin io.Reader) ([]export.Record, error) {
	if path == "-" {
		return export.ReadCSV(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingredients: %w", err)
	}
	defer f.Close()

	return export.ReadCSV(f)
}

func writeExport(path string, res costing.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := export.WriteCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
