package main

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KilimcininKorOglu/berconv/internal/control"
)

type controlOptions struct {
	input    string
	critical bool
}

func newControlCommand(c *cli) *cobra.Command {
	var opts controlOptions

	cmd := &cobra.Command{
		Use:   "control NAME [DATA]",
		Short: "Decode the value of a known LDAP control",
		Long: `Decode the value of a known LDAP control and print its fields as YAML.

NAME is paged, psearch, ecn or the control OID. DATA is read from standard
input when omitted or "-".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := "-"
			if len(args) == 2 {
				data = args[1]
			}
			return runControl(c, opts, args[0], data)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input encoding: hex, base64, raw (overrides config)")
	flags.BoolVar(&opts.critical, "critical", false, "Mark the control as critical")
	return cmd
}

func runControl(c *cli, opts controlOptions, name, arg string) error {
	oid, err := control.OIDForName(name)
	if err != nil {
		return err
	}

	raw := []byte(arg)
	if arg == "-" {
		if raw, err = io.ReadAll(c.in); err != nil {
			return errors.Wrap(err, "read standard input")
		}
	}
	encoding := c.config.Codec.Input
	if opts.input != "" {
		encoding = opts.input
	}
	data, err := readBytes(encoding, raw)
	if err != nil {
		return err
	}

	parsed, err := control.Parse(c.codec, control.Control{OID: oid, Criticality: opts.critical, Value: data})
	if err != nil {
		return err
	}
	c.logger.Debug("parsed control", "oid", oid, "bytes", len(data))

	out, err := yaml.Marshal(controlFields(oid, parsed))
	if err != nil {
		return errors.Wrap(err, "write YAML")
	}
	_, err = c.out.Write(out)
	return err
}

// controlFields flattens a parsed control for printing.
func controlFields(oid string, parsed any) map[string]any {
	fields := map[string]any{"oid": oid}
	switch p := parsed.(type) {
	case *control.PagedResults:
		fields["criticality"] = p.Criticality
		fields["size"] = p.Size
		fields["cookie"] = hex.EncodeToString(p.Cookie)
	case *control.PersistentSearch:
		fields["criticality"] = p.Criticality
		fields["changeTypes"] = p.ChangeTypes
		fields["changesOnly"] = p.ChangesOnly
		fields["returnECs"] = p.ReturnECs
	case *control.EntryChangeNotification:
		fields["changeType"] = p.ChangeType
		if p.PreviousDN != "" {
			fields["previousDN"] = p.PreviousDN
		}
		if p.ChangeNumber != 0 {
			fields["changeNumber"] = p.ChangeNumber
		}
	}
	return fields
}
