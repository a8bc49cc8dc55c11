package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

type decodeOptions struct {
	input string
	yaml  bool
}

func newDecodeCommand(c *cli) *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode FORMAT [DATA]",
		Short: "Decode BER data with a format string",
		Long: `Decode BER data with a format string.

DATA is read from standard input when omitted or "-". Each decoded value
is printed on its own line as a literal accepted by encode.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := "-"
			if len(args) == 2 {
				data = args[1]
			}
			return runDecode(c, opts, args[0], data)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input encoding: hex, base64, raw (overrides config)")
	flags.BoolVar(&opts.yaml, "yaml", false, "Print decoded values as YAML")
	return cmd
}

func runDecode(c *cli, opts decodeOptions, format, arg string) error {
	var raw []byte
	if arg == "-" {
		var err error
		if raw, err = io.ReadAll(c.in); err != nil {
			return errors.Wrap(err, "read standard input")
		}
	} else {
		raw = []byte(arg)
	}

	encoding := c.config.Codec.Input
	if opts.input != "" {
		encoding = opts.input
	}
	data, err := readBytes(encoding, raw)
	if err != nil {
		return err
	}

	values, err := c.codec.Decode(format, data)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	c.logger.Debug("decoded", "format", format, "bytes", len(data), "values", len(values))

	if opts.yaml {
		return writeYAML(c.out, values)
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(c.out, formatValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// yamlValue is the YAML form of one decoded value.
type yamlValue struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

func writeYAML(w io.Writer, values []ber.Value) error {
	out := make([]yamlValue, 0, len(values))
	for _, v := range values {
		out = append(out, toYAML(v))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "write YAML")
	}
	return enc.Close()
}
