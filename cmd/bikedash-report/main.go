package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/chrissnell/bikedash/internal/charts"
	"github.com/chrissnell/bikedash/internal/constants"
	"github.com/chrissnell/bikedash/internal/dashboard"
	"github.com/chrissnell/bikedash/internal/dataset"
	"github.com/chrissnell/bikedash/internal/log"
	"github.com/chrissnell/bikedash/internal/types"
	"github.com/chrissnell/bikedash/pkg/config"
	"github.com/chrissnell/bikedash/pkg/responseformat"
)

// listFlag collects a repeatable, comma-separable flag and remembers whether it was given at all
type listFlag struct {
	set    bool
	values []string
}

func (l *listFlag) String() string {
	return strings.Join(l.values, ",")
}

func (l *listFlag) Set(v string) error {
	l.set = true
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			l.values = append(l.values, s)
		}
	}
	return nil
}

func main() {
	var years, seasons, weather listFlag

	file := flag.String("file", os.Getenv(config.DatasetEnvVar), "Path to the cleaned daily dataset CSV")
	flag.Var(&years, "year", "Year to include; repeat or comma-separate. Omit for every year")
	flag.Var(&seasons, "season", "Season to include; repeat or comma-separate. Omit for every season")
	flag.Var(&weather, "weather", "Weather condition to include; repeat or comma-separate. Omit for every condition")
	dayType := flag.String("day-type", "all", "Day type: all, weekday or weekend")
	format := flag.String("format", "", "Output format: text, json, pretty or msgpack (default text on a terminal, json otherwise)")
	chartName := flag.String("chart", "", "Render a chart instead of the report; 'all' renders every chart")
	out := flag.String("out", "", "Chart output file, or directory when -chart all")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-report %s\n", constants.AppName, constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -file <day_clean.csv> [filters] [-format text|json|pretty|msgpack] [-chart name -out file.png]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	records, err := dataset.Load(*file)
	if err != nil {
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
	log.Debugw("dataset loaded", "path", *file, "days", len(records))

	sel, err := buildSelection(dataset.Options(records), years, seasons, weather, *dayType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vm := dashboard.Render(records, sel)

	if *chartName != "" {
		if err := writeCharts(context.Background(), vm, *chartName, *out); err != nil {
			log.Errorf("%v", err)
			log.Sync()
			os.Exit(1)
		}
		return
	}

	if *format == "" {
		*format = "json"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			*format = "text"
		}
	}

	if err := writeReport(vm, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildSelection mirrors the query string rules of the server: a filter that is not
// given selects every option, a filter given only empty values selects nothing
func buildSelection(opts dataset.FilterOptions, years, seasons, weather listFlag, dayType string) (types.FilterSelection, error) {
	yearValues := opts.Years
	if years.set {
		yearValues = []int{}
		for _, v := range years.values {
			y, err := strconv.Atoi(v)
			if err != nil {
				return types.FilterSelection{}, fmt.Errorf("invalid year %q", v)
			}
			yearValues = append(yearValues, y)
		}
	}

	seasonValues := opts.Seasons
	if seasons.set {
		seasonValues = seasons.values
	}

	weatherValues := opts.Weather
	if weather.set {
		weatherValues = weather.values
	}

	dt, err := types.ParseDayTypeChoice(dayType)
	if err != nil {
		return types.FilterSelection{}, err
	}

	return types.NewFilterSelection(yearValues, seasonValues, weatherValues, dt), nil
}

func writeReport(vm *dashboard.ViewModel, format string) error {
	switch format {
	case "text":
		return writeText(os.Stdout, vm)
	case "pretty":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(vm)
	case responseformat.FormatJSON, responseformat.FormatMsgPack:
		return responseformat.Encode(os.Stdout, format, vm)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// writeCharts renders one named chart to out, or every chart into the directory out
func writeCharts(ctx context.Context, vm *dashboard.ViewModel, name, out string) error {
	if name != "all" {
		if out == "" {
			out = name + ".png"
		}
		return writeChart(vm, name, out)
	}

	if out == "" {
		out = "."
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, n := range dashboard.ChartNames {
		n := n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeChart(vm, n, filepath.Join(out, n+".png"))
		})
	}
	return g.Wait()
}

func writeChart(vm *dashboard.ViewModel, name, path string) error {
	spec, err := dashboard.Chart(name, vm)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := charts.RenderPNG(f, spec, charts.Options{}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Infow("chart written", "chart", name, "path", path)
	return nil
}
