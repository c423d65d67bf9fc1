// Command-line entry point for the GDS itinerary translator.
//
// Itineraries are read as raw GDS text, one segment per line, and printed
// either as readable Spanish text or as JSON. Airline and airport names come
// from YAML/JSON directory files or from a SQLite/PostgreSQL directory
// database filled with the import-directory command.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gds_translator/internal/batch"
	"gds_translator/internal/config"
	"gds_translator/internal/gds"
	"gds_translator/internal/itinerary"
	"gds_translator/internal/logger"
	"gds_translator/internal/lookup"
	"gds_translator/internal/quote"
	"gds_translator/internal/storage"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "gds_translator - commands:")
	fmt.Fprintln(w, "  translate         - translate one itinerary to readable text or JSON")
	fmt.Fprintln(w, "  batch             - translate a JSON batch of itineraries")
	fmt.Fprintln(w, "  quote             - price a fare with fees and margin")
	fmt.Fprintln(w, "  trace             - show how one line is matched by a grammar")
	fmt.Fprintln(w, "  import-directory  - load an airline or airport file into a directory database")
	fmt.Fprintln(w, "  audit-stats       - summarise the ClickHouse translation log")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gds_translator translate -format SABRE [-input pnr.txt] [-json] [-pretty]")
	fmt.Fprintln(w, "  gds_translator batch -input items.json [-workers 4] [-pretty]")
	fmt.Fprintln(w, "  gds_translator quote -base 100 -consolidator 25 -internal 15 -margin 10")
	fmt.Fprintln(w, "  gds_translator trace -format KIU -line '1 V0 1234 Y 15JAN MO CCSPMV HK1 0700 0745'")
	fmt.Fprintln(w, "  gds_translator import-directory -kind airlines -file airlines.yaml -directory-source sqlite")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Formats: SABRE, AMADEUS, KIU (case-insensitive).")
	fmt.Fprintln(w, "  - Directory flags (-directory-source, -airlines, -airports, -sqlite, -pg-*) apply to translate and batch.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "translate":
		err = runTranslate(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "quote":
		err = runQuote(os.Args[2:])
	case "trace":
		err = runTrace(os.Args[2:])
	case "import-directory":
		err = runImport(os.Args[2:])
	case "audit-stats":
		err = runAuditStats(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	format := fs.String("format", "", "GDS format: SABRE, AMADEUS or KIU")
	inPath := fs.String("input", "", "Itinerary text file (default: stdin)")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	logLevel := fs.String("log-level", "warn", "Log level (debug shows unmatched lines)")
	var dirs storage.Config
	config.RegisterDirectory(fs, &dirs)
	_ = fs.Parse(args)

	f, err := gds.ParseFormat(*format)
	if err != nil {
		return err
	}

	raw, err := readInput(*inPath)
	if err != nil {
		return err
	}

	airlines, airports, err := storage.LoadDirectories(context.Background(), dirs)
	if err != nil {
		return fmt.Errorf("load directories: %w", err)
	}

	log := logger.Must(*logLevel)
	defer func() { _ = log.Sync() }()

	t := itinerary.NewTranslator(airlines, airports, itinerary.WithLogger(log))
	res, err := t.Parse(raw, f)
	if err != nil {
		var gerr *itinerary.GlobalParseError
		if errors.As(err, &gerr) {
			return fmt.Errorf("no se pudo procesar el itinerario: %w", err)
		}
		return err
	}

	if *asJSON {
		return writeJSON(os.Stdout, res, *pretty)
	}
	_, err = io.WriteString(os.Stdout, res.Text())
	return err
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	inPath := fs.String("input", "", "JSON file: {\"items\": [...]} or a bare array (default: stdin)")
	workers := fs.Int("workers", 1, "Items translated concurrently")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	logLevel := fs.String("log-level", "warn", "Log level")
	var dirs storage.Config
	config.RegisterDirectory(fs, &dirs)
	_ = fs.Parse(args)

	data, err := readInput(*inPath)
	if err != nil {
		return err
	}
	items, err := decodeBatchItems([]byte(data))
	if err != nil {
		return err
	}

	airlines, airports, err := storage.LoadDirectories(context.Background(), dirs)
	if err != nil {
		return fmt.Errorf("load directories: %w", err)
	}

	log := logger.Must(*logLevel)
	defer func() { _ = log.Sync() }()

	t := itinerary.NewTranslator(airlines, airports, itinerary.WithLogger(log))
	p := batch.NewProcessor(t, batch.WithWorkers(*workers), batch.WithLogger(log))
	res, err := p.Translate(context.Background(), items)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, res, *pretty)
}

// decodeBatchItems accepts either {"items": [...]} or a bare JSON array.
func decodeBatchItems(data []byte) ([]batch.Item, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []batch.Item
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("decode batch: %w", err)
		}
		return items, nil
	}

	var req struct {
		Items []batch.Item `json:"items"`
	}
	if err := json.Unmarshal([]byte(trimmed), &req); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return req.Items, nil
}

func runQuote(args []string) error {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	var in quote.Input
	fs.StringVar(&in.BaseFare, "base", "", "Base fare")
	fs.StringVar(&in.ConsolidatorFee, "consolidator", "", "Consolidator fee")
	fs.StringVar(&in.InternalFee, "internal", "", "Internal fee")
	fs.StringVar(&in.MarginPercent, "margin", "", "Margin percent")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	_ = fs.Parse(args)

	res, err := quote.Calculate(in)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(os.Stdout, res, true)
	}

	fmt.Printf("Tarifa base:        %s\n", res.BaseFare.StringFixed(2))
	fmt.Printf("Fee consolidador:   %s\n", res.ConsolidatorFee.StringFixed(2))
	fmt.Printf("Fee interno:        %s\n", res.InternalFee.StringFixed(2))
	fmt.Printf("Subtotal:           %s\n", res.Subtotal.StringFixed(2))
	fmt.Printf("Margen (%s%%):      %s\n", res.MarginPercent.String(), res.MarginAmount.StringFixed(2))
	fmt.Printf("Precio final:       %s\n", res.FinalPrice.StringFixed(2))
	return nil
}

func runTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	format := fs.String("format", "", "GDS format: SABRE, AMADEUS or KIU")
	line := fs.String("line", "", "Line to trace (default: first non-blank line of stdin)")
	_ = fs.Parse(args)

	f, err := gds.ParseFormat(*format)
	if err != nil {
		return err
	}

	text := *line
	if text == "" {
		raw, err := readInput("")
		if err != nil {
			return err
		}
		lines := itinerary.SplitLines(raw)
		if len(lines) == 0 {
			return errors.New("no line to trace")
		}
		text = lines[0]
	}

	trace, err := itinerary.NewTranslator(nil, nil).Trace(text, f)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, trace, true)
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import-directory", flag.ExitOnError)
	kindName := fs.String("kind", "", "Directory kind: airlines or airports")
	file := fs.String("file", "", "YAML or JSON file of code: name pairs")
	replace := fs.Bool("replace", false, "Delete existing entries of this kind first")
	var dirs storage.Config
	config.RegisterDirectory(fs, &dirs)
	_ = fs.Parse(args)

	kind, err := lookup.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-file is required")
	}
	dir, err := lookup.LoadFile(*file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := storage.OpenDirectoryStore(ctx, dirs)
	if err != nil {
		return err
	}
	defer store.Close()

	if *replace {
		n, err := store.DeleteDirectory(ctx, kind)
		if err != nil {
			return fmt.Errorf("delete %s: %w", kind, err)
		}
		fmt.Fprintf(os.Stderr, "Deleted %d %s\n", n, kind)
	}

	n, err := store.ImportDirectory(ctx, kind, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Imported %d %s into %s\n", n, kind, dirs.Source)
	return nil
}

func runAuditStats(args []string) error {
	fs := flag.NewFlagSet("audit-stats", flag.ExitOnError)
	var cfg storage.ClickHouseConfig
	config.RegisterClickHouse(fs, &cfg)
	_ = fs.Parse(args)

	ctx := context.Background()
	ch, err := storage.OpenClickHouse(ctx, cfg)
	if err != nil {
		return err
	}
	defer ch.Close()

	stats, err := ch.StatsByFormat(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s %12s %8s %10s %12s\n", "FORMAT", "TRANSLATED", "FAILED", "SEGMENTS", "LINE_ERRORS")
	for _, s := range stats {
		fmt.Printf("%-10s %12d %8d %10d %12d\n", s.Format, s.Translations, s.Failed, s.Segments, s.LineErrors)
	}
	return nil
}

// readInput reads a whole file, or stdin when path is empty.
func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
