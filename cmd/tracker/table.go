package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"StockTracker/internal/dashboard"
	"StockTracker/internal/model"
	"StockTracker/internal/recorder"
	"StockTracker/internal/render"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type tableCmd struct {
	command string
	symbols string
	format  string
	csvPath string
	width   int
	offline bool
}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "display price growth for a list of symbols" }
func (*tableCmd) Usage() string {
	return `tracker table [-command <command>] [-symbols <list>] [-format text|markdown|json] [-csv <file>]

  Fetches daily prices and displays the latest price, the daily change and
  the growth over each configured window, followed by any alerts.

Usage Examples:
# Default symbols.
$ tracker table

# A custom list, also written to a CSV file.
$ tracker table -symbols "msft, googl" -csv ai_agent_stocks.csv
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.command, "command", "", "Trigger command (defaults to the configured one)")
	f.StringVar(&c.symbols, "symbols", "", "Comma-separated symbols (defaults to the configured set)")
	f.StringVar(&c.format, "format", "text", "Output format: text, markdown or json")
	f.StringVar(&c.csvPath, "csv", "", "Also write the table to this CSV file")
	f.IntVar(&c.width, "width", 120, "Terminal width for text output")
	f.BoolVar(&c.offline, "offline", false, "Use generated data instead of a market data provider")
}

func (c *tableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup(c.offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	trigger := c.command
	if trigger == "" {
		trigger = a.cfg.Tracker.Command
	}
	if !dashboard.MatchCommand(trigger, a.cfg.Tracker.Command) {
		fmt.Println(dashboard.PromptMessage)
		return subcommands.ExitSuccess
	}

	symbols := dashboard.ParseSymbols(c.symbols, a.assembler.Settings.DefaultSymbols)
	report := a.assembler.Build(ctx, symbols)
	if _, err := a.recorder.RecordReport(report, recorder.TriggerCLI); err != nil {
		a.logger.Warn("record report", zap.Error(err))
	}

	if c.csvPath != "" {
		if err := writeCSVFile(c.csvPath, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if err := printReport(report, c.format, c.width); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func writeCSVFile(path string, report *model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := dashboard.WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printReport(report *model.Report, format string, width int) error {
	switch format {
	case "json":
		data, err := render.JSON(report)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	case "markdown":
		fmt.Print(render.Markdown(report))
	case "text":
		return printMarkdown(render.Markdown(report), width)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func printMarkdown(md string, width int) error {
	out, err := render.Terminal(md, width)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
