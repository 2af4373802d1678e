package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/core-tools/hsu-servicers/pkg/errors"
	"github.com/core-tools/hsu-servicers/pkg/logging"
	zaplogging "github.com/core-tools/hsu-servicers/pkg/logging/zap"
	"github.com/core-tools/hsu-servicers/pkg/serviceconfig"
	"github.com/core-tools/hsu-servicers/pkg/servicers"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type globalOptions struct {
	Path     string `long:"path" short:"p" description:"Service list file (JSON), overrides SERVICERS_PATH"`
	Strict   bool   `long:"strict" description:"Reject record keys other than program, args, cwd and state"`
	NoStrict bool   `long:"no-strict" description:"Ignore unknown record keys, overrides SERVICERS_STRICT"`
	Format   string `long:"format" short:"f" description:"Output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Verbose  bool   `short:"v" long:"verbose" description:"Verbose logging"`
}

type application struct {
	options *globalOptions
	stdout  io.Writer
	logger  logging.Logger
	zap     *zap.Logger
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s , ", module)
}

// initLogger is deferred until a command runs so that --verbose is known
func (a *application) initLogger() error {
	if a.logger != nil {
		return nil
	}

	zapLogger, err := zaplogging.NewZapLogger(a.options.Verbose)
	if err != nil {
		return err
	}
	a.zap = zapLogger
	a.logger = logging.NewLogger(logPrefix("servicers"), zaplogging.NewLogFuncs(zapLogger))
	return nil
}

func (a *application) close() {
	if a.zap != nil {
		_ = a.zap.Sync()
	}
}

func (a *application) loadRecordSet() (*servicers.ServiceRecordSet, error) {
	if err := a.initLogger(); err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if a.options.Path != "" {
		overrides[servicers.KeyPath] = a.options.Path
	}
	switch {
	case a.options.Strict && a.options.NoStrict:
		return nil, errors.NewValidationError("--strict and --no-strict are mutually exclusive", nil)
	case a.options.Strict:
		overrides[servicers.KeyStrict] = true
	case a.options.NoStrict:
		overrides[servicers.KeyStrict] = false
	}

	loaderOptions, err := servicers.ResolveOptions(overrides)
	if err != nil {
		return nil, err
	}

	return servicers.Load(loaderOptions, a.logger)
}

type listCommand struct {
	app *application
}

func (c *listCommand) Execute(args []string) error {
	set, err := c.app.loadRecordSet()
	if err != nil {
		return err
	}
	return render(c.app.stdout, c.app.options.Format, set.All(), 0, true)
}

type showCommand struct {
	Positional struct {
		Index int `positional-arg-name:"index" description:"Zero-based position in the service list"`
	} `positional-args:"yes" required:"yes"`

	app *application
}

func (c *showCommand) Execute(args []string) error {
	set, err := c.app.loadRecordSet()
	if err != nil {
		return err
	}

	service, err := set.At(c.Positional.Index)
	if err != nil {
		return err
	}
	return render(c.app.stdout, c.app.options.Format, []*serviceconfig.ServiceConfig{service}, c.Positional.Index, false)
}

// render writes services in the requested format. firstIndex numbers the
// rows of the text table; asList selects between a sequence and a single document.
func render(w io.Writer, format string, services []*serviceconfig.ServiceConfig, firstIndex int, asList bool) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if asList {
			return encoder.Encode(services)
		}
		return encoder.Encode(services[0])

	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		if asList {
			return encoder.Encode(services)
		}
		return encoder.Encode(services[0])

	default:
		if len(services) == 0 {
			fmt.Fprintln(w, "No services configured")
			return nil
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "State", "Program", "Args", "Cwd"})
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(true)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetTablePadding("\t")
		table.SetNoWhiteSpace(true)
		for i, service := range services {
			table.Append([]string{
				fmt.Sprintf("%d", firstIndex+i),
				service.State(),
				service.Program(),
				strings.Join(service.Args(), " "),
				service.Cwd(),
			})
		}
		table.Render()
		return nil
	}
}
