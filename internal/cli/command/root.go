package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/securetoken-go/internal/cli/config"
	"github.com/yndnr/securetoken-go/internal/cli/output"
	"github.com/yndnr/securetoken-go/internal/infra/buildinfo"
	"github.com/yndnr/securetoken-go/internal/telemetry/logger"
	"github.com/yndnr/securetoken-go/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// Runtime is the state built once per invocation and shared by commands.
type Runtime struct {
	Config  *config.Config
	Log     logger.Logger
	Metrics *metric.Registry
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "tokgen",
		Usage:                "Generate, compare and inspect secure random tokens",
		Version:              buildinfo.Get().Version,
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			GenerateCommand(),
			CompareCommand(),
			SortCommand(),
			InspectCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
		After:  writeMetrics,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.tokgen/config.yaml)",
			EnvVars: []string{"TOKGEN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file after the command",
		},
	}
}

// flagOverrides maps explicitly set global flags onto config keys.
func flagOverrides(c *cli.Context) map[string]any {
	keys := map[string]string{
		"output":       "output",
		"log-level":    "log.level",
		"metrics-file": "metrics.file",
	}

	overrides := make(map[string]any)
	for flag, key := range keys {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	return overrides
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	c.App.Metadata[runtimeKey] = &Runtime{
		Config:  cfg,
		Log:     log,
		Metrics: metric.NewRegistry(),
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	c.Context = logger.WithLogger(ctx, log)

	return nil
}

func writeMetrics(c *cli.Context) error {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok || rt.Config.Metrics.File == "" {
		return nil
	}
	if err := rt.Metrics.WriteTextfile(rt.Config.Metrics.File); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// runtimeFrom returns the invocation's Runtime.
func runtimeFrom(c *cli.Context) (*Runtime, error) {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok {
		return nil, errors.New("tokgen not initialised")
	}
	return rt, nil
}

// commandContext tags the context with the running command's name.
func commandContext(c *cli.Context) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithCommand(ctx, c.Command.Name)
}

// render writes data in the configured output format.
func render(c *cli.Context, rt *Runtime, data any) error {
	format, err := output.ParseFormat(rt.Config.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(c.App.Writer, data)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
