package command

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/securetoken-go/internal/core/domain"
	"github.com/yndnr/securetoken-go/internal/core/service"
	"github.com/yndnr/securetoken-go/internal/telemetry/logger"
)

// CompareCommand returns the compare command.
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"cmp"},
		Usage:     "Compare two tokens in constant time",
		ArgsUsage: "TOKEN TOKEN|DIGEST",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "digest",
				Usage: "Treat the second argument as a digest from generate; a mismatch exits non-zero",
			},
			inputEncodingFlag(),
		},
		Action: compare,
	}
}

// SortCommand returns the sort command.
func SortCommand() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort tokens by length, then bytes (reads stdin without arguments)",
		ArgsUsage: "[TOKEN...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "unique",
				Aliases: []string{"u"},
				Usage:   "Drop repeated tokens",
			},
			inputEncodingFlag(),
		},
		Action: sortTokens,
	}
}

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the size and digest of a token",
		ArgsUsage: "TOKEN",
		Flags:     []cli.Flag{inputEncodingFlag()},
		Action:    inspect,
	}
}

// DigestResult is the output of compare --digest.
type DigestResult struct {
	Equal bool `json:"equal" yaml:"equal"`
}

func inputEncodingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "Input token encoding: base64 or hex (detected per token when unset)",
	}
}

func newMatcher(c *cli.Context, rt *Runtime) (*service.Matcher, error) {
	var cfg service.MatcherConfig
	if name := c.String("encoding"); name != "" {
		enc, err := domain.ParseEncoding(name)
		if err != nil {
			return nil, err
		}
		cfg.Encoding = enc
	}
	return service.NewMatcher(cfg, rt.Metrics, logger.L(commandContext(c))), nil
}

func compare(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("compare: expected 2 arguments, got %d", c.NArg())
	}
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	m, err := newMatcher(c, rt)
	if err != nil {
		return err
	}
	ctx := commandContext(c)

	if c.Bool("digest") {
		ok, err := m.MatchDigest(ctx, c.Args().Get(0), c.Args().Get(1))
		if err != nil {
			return err
		}
		if err := render(c, rt, DigestResult{Equal: ok}); err != nil {
			return err
		}
		if !ok {
			return domain.ErrDigestMismatch
		}
		return nil
	}

	result, err := m.Compare(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return render(c, rt, result)
}

func sortTokens(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	texts := c.Args().Slice()
	if len(texts) == 0 {
		texts, err = readLines(c)
		if err != nil {
			return err
		}
	}

	m, err := newMatcher(c, rt)
	if err != nil {
		return err
	}
	sorted, err := m.Order(texts, c.Bool("unique"))
	if err != nil {
		return err
	}
	return render(c, rt, sorted)
}

func readLines(c *cli.Context) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

func inspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("inspect: expected 1 argument, got %d", c.NArg())
	}
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	m, err := newMatcher(c, rt)
	if err != nil {
		return err
	}
	info, err := m.Inspect(c.Args().First())
	if err != nil {
		return err
	}
	return render(c, rt, info)
}
