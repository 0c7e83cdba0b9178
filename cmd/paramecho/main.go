// Command paramecho parses its command line with paramparse and prints
// the resulting values as YAML or JSON. It serves as a worked example of
// the library and as a tool to try out quoting and prefix resolution.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/janert/paramparse"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const version = "0.2.0"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func newRegistry() *paramparse.Registry {
	reg := paramparse.NewRegistry()

	reg.AddMany(
		paramparse.NewParameter("--", "help", paramparse.Fixed(0), paramparse.Flag(paramparse.Halt())).
			AliasWithPrefix("-", "h").
			SetDescription("Show this help and exit"),
		paramparse.NewParameter("--", "version", paramparse.Fixed(0), paramparse.Flag(paramparse.HaltWith(version))).
			SetDescription("Print the version and exit"),
		paramparse.NewParameter("--", "name", paramparse.Fixed(1).Named("name"), paramparse.As[string]()).
			AliasWithPrefix("-", "n").
			SetDescription("Name to greet"),
		paramparse.NewParameter("--", "tags", paramparse.Variadic().Named("tag"), paramparse.Strings()).
			AliasWithPrefix("-", "t").
			SetDescription("Tags, up to the next parameter"),
		paramparse.NewParameter("--", "count", paramparse.Fixed(1).Named("n"), paramparse.As[int]()).
			SetDescription("Repeat count"),
		paramparse.NewParameter("--", "point", paramparse.Fixed(2).Named("x", "y"), paramparse.As[float64]()).
			SetDescription("A point in the plane"),
		paramparse.NewParameter("--", "timeout", paramparse.Fixed(1).Named("duration"), paramparse.As[time.Duration]()).
			SetDescription("Timeout, eg. 1m30s"),
		paramparse.NewParameter("--", "verbose", paramparse.Fixed(0), paramparse.Flag(true)).
			AliasWithPrefix("-", "v").
			SetDescription("Verbose output"),
		paramparse.NewParameter("--", "format", paramparse.Fixed(1).Named("yaml|json"), paramparse.As[string]()).
			SetDescription("Output format"),
		paramparse.NewParameter("--", "debug", paramparse.Fixed(0), paramparse.Flag(true)).
			SetDescription("Trace the parse on standard error"),
	)

	// Positionals are accepted, unknown parameters are not
	reg.SetDefault(func(token string) (any, bool) {
		if strings.HasPrefix(token, "-") {
			return token, false
		}
		return token, true
	})

	return reg
}

func run(argv []string, stdout, stderr io.Writer) int {
	// The logger must exist before parsing starts
	level := slog.LevelWarn
	if slices.Contains(argv, "--debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := newRegistry()

	var errs []error
	parser := paramparse.NewParser(reg,
		paramparse.WithLogger(logger),
		paramparse.WithErrorHandler(func(e *paramparse.ParseError) {
			errs = append(errs, e)
		}),
	)

	// With an error handler set, Parse reports errors only through it
	results, _ := parser.Parse(argv)

	if h := results.HaltedBy(); h != nil {
		switch h.RootName() {
		case "help":
			if err := usage(reg, stdout); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return exitError
			}
			return exitOK
		case "version":
			v, _ := results.Get("version")
			fmt.Fprintln(stdout, v)
			return exitOK
		}
	}

	for _, e := range errs {
		fmt.Fprintf(stderr, "Error: %v\n", e)
	}
	for _, key := range results.Keys() {
		if v, _ := results.Get(key); isConversionError(v) {
			fmt.Fprintf(stderr, "Error: --%s: %v\n", key, v)
			return exitUsage
		}
	}
	if !results.Valid() {
		if err := paramparse.WriteShortUsage(stderr, reg, "paramecho", false); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitUsage
	}

	format, _ := results.Get("format")
	if err := write(stdout, results, format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func isConversionError(v any) bool {
	_, ok := v.(*paramparse.ConversionError)
	return ok
}

func usage(reg *paramparse.Registry, w io.Writer) error {
	cfg := paramparse.UsageConfig{
		AppName:     "paramecho",
		Version:     version,
		Description: "Parse the command line and print the results.",
		Binary:      "paramecho",
	}
	if f, ok := w.(*os.File); ok {
		cfg.Color = term.IsTerminal(int(f.Fd()))
	}
	return paramparse.WriteUsage(w, reg, cfg)
}

func write(w io.Writer, results *paramparse.ResultSet, format any) error {
	switch format {
	case nil, "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unknown format %v", format)
}
