package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

type encodeOptions struct {
	output string
}

func newEncodeCommand(c *cli) *cobra.Command {
	var opts encodeOptions

	cmd := &cobra.Command{
		Use:   "encode FORMAT [VALUE...]",
		Short: "Encode typed values with a format string",
		Long: `Encode typed values with a format string.

Values are literals of the form KIND:TEXT:
  b:true          boolean
  i:-5, i:0x87    integer (also for e and t)
  s:text          UTF-8 string
  o:0a0b          octet string in hex
  X:f0/4          bit string in hex, optional unused-bit count
  v:a,b,c         list of strings
  V:0a,0b0c       list of octet strings in hex
  null            no value`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(c, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output encoding: hex, base64, raw (overrides config)")
	return cmd
}

func runEncode(c *cli, opts encodeOptions, format string, literals []string) error {
	values := make([]ber.Value, len(literals))
	for i, lit := range literals {
		v, err := parseValue(lit)
		if err != nil {
			return errors.Wrapf(err, "value %d", i)
		}
		values[i] = v
	}

	data, err := c.codec.Encode(format, values...)
	if err != nil {
		return errors.Wrap(err, "encode")
	}

	encoding := c.config.Codec.Output
	if opts.output != "" {
		encoding = opts.output
	}
	c.logger.Debug("encoded", "format", format, "values", len(values), "bytes", len(data), "encoding", encoding)
	return writeBytes(c.out, encoding, data)
}
