// Package main provides the entry point for the berconv CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
	"github.com/KilimcininKorOglu/berconv/internal/config"
	"github.com/KilimcininKorOglu/berconv/internal/logging"
)

func main() {
	exitCode := run(os.Args)
	os.Exit(exitCode)
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string) int {
	return runWith(args, os.Stdin, os.Stdout, os.Stderr)
}

func runWith(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := &cli{in: stdin, out: stdout, err: stderr}
	root := newRootCommand(cli)
	root.SetArgs(args[1:])
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cli.logger != nil {
		defer cli.logger.Close()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if cli.logger != nil {
			cli.logger.Debug("command failed", "error", err)
		}
		return 1
	}
	return 0
}

// globalOptions are flags shared by every subcommand.
type globalOptions struct {
	configFile string
	dialect    string
	logLevel   string
	logFormat  string
}

// cli carries the streams and the settings resolved before a subcommand runs.
type cli struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	opts   globalOptions
	config *config.Config
	codec  ber.Codec
	logger logging.Logger
}

func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "berconv",
		Short:         "Encode and decode LDAP BER values with format strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errors.New("no command given")
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.opts.configFile, "config", "c", "", "Path to configuration file")
	flags.StringVar(&c.opts.dialect, "dialect", "", "BER dialect: strict or legacy (overrides config)")
	flags.StringVar(&c.opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&c.opts.logFormat, "log-format", "", "Log format: text or json (overrides config)")

	cmd.AddCommand(
		newEncodeCommand(c),
		newDecodeCommand(c),
		newControlCommand(c),
		newVersionCommand(c),
	)
	return cmd
}

// setup resolves configuration from defaults, file, environment and flags,
// in that order, and builds the codec and logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if c.opts.configFile != "" {
		loaded, err := config.LoadConfig(c.opts.configFile)
		if err != nil {
			return errors.Wrap(err, "load configuration")
		}
		cfg = loaded
	}
	config.ApplyEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Codec.Dialect = c.opts.dialect
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = c.opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = c.opts.logFormat
	}

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return errors.Wrap(errs[0], "invalid configuration")
	}

	c.config = cfg
	c.codec = ber.Codec{Dialect: cfg.Codec.DialectValue()}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	switch cfg.Logging.Output {
	case "", "stderr":
		logCfg.Writer = c.err
	case "stdout":
		logCfg.Writer = c.out
	}
	c.logger = logging.New(logCfg).WithFields("command", cmd.Name(), "dialect", c.codec.Dialect.String())
	return nil
}
