package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"StockTracker/internal/collector"
	"StockTracker/internal/dashboard"
	"StockTracker/internal/render"

	"github.com/google/subcommands"
)

type detailCmd struct {
	symbol  string
	format  string
	width   int
	offline bool
}

func (*detailCmd) Name() string     { return "detail" }
func (*detailCmd) Synopsis() string { return "display price, range and profile of one symbol" }
func (*detailCmd) Usage() string {
	return `tracker detail -s <symbol> [-format text|markdown|json]

  Displays the latest quote, the price range and history over the detail
  window, and the company profile of a single symbol.
`
}

func (c *detailCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to inspect")
	f.StringVar(&c.format, "format", "text", "Output format: text, markdown or json")
	f.IntVar(&c.width, "width", 120, "Terminal width for text output")
	f.BoolVar(&c.offline, "offline", false, "Use generated data instead of a market data provider")
}

func (c *detailCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.symbol) == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	a, err := setup(c.offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	d, err := a.assembler.Detail(ctx, c.symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, dashboard.FailureMessage(strings.ToUpper(c.symbol), errorReason(err)))
		return subcommands.ExitFailure
	}

	switch c.format {
	case "json":
		data, err := render.JSON(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		os.Stdout.Write(data)
	case "markdown":
		fmt.Print(render.DetailMarkdown(d))
	default:
		if err := printMarkdown(render.DetailMarkdown(d), c.width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func errorReason(err error) string {
	var fe *collector.FetchError
	if errors.As(err, &fe) {
		return fe.Message()
	}
	return err.Error()
}
