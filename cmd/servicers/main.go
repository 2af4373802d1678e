package main

import (
	"fmt"
	"io"
	"os"

	"github.com/core-tools/hsu-servicers/pkg/logging"

	flags "github.com/jessevdk/go-flags"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run parses argv and executes the selected command. A nil logger means the
// zap backend is built once flags are known.
func run(argv []string, stdout, stderr io.Writer, logger logging.Logger) int {
	var opts globalOptions
	app := &application{
		options: &opts,
		stdout:  stdout,
		logger:  logger,
	}
	defer app.close()

	parser := flags.NewParser(&opts, flags.HelpFlag)
	parser.Name = "servicers"
	parser.ShortDescription = "Inspect the configured service list"

	if _, err := parser.AddCommand("list", "List services", "Print every configured service in file order", &listCommand{app: app}); err != nil {
		fmt.Fprintf(stderr, "Failed to register command: %v\n", err)
		return 1
	}
	if _, err := parser.AddCommand("show", "Show one service", "Print the service at the given zero-based index", &showCommand{app: app}); err != nil {
		fmt.Fprintf(stderr, "Failed to register command: %v\n", err)
		return 1
	}

	_, err := parser.ParseArgs(argv)
	if err == nil {
		return 0
	}

	if flagsErr, ok := err.(*flags.Error); ok {
		if flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "Command line flags parsing failed: %v\n", err)
		return 1
	}

	if app.logger != nil {
		app.logger.Errorf("Failed to run: %v", err)
	} else {
		fmt.Fprintf(stderr, "Failed to run: %v\n", err)
	}
	return 1
}
