package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/securetoken-go/internal/cli/config"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Show the default configuration file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	return render(c, rt, rt.Config)
}

func configPath(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return render(c, rt, []string{path})
}
