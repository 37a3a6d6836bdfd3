package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a state file between formats",
		Long: `Convert a camera state file. Formats come from the file extensions
(.json, .yaml, .yml, .toml) unless --from or --to is given. The record is validated
on the way through.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			rec, err := readRecord(in, from)
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(to, out)
			if err != nil {
				return err
			}
			if err := writeRecord(out, rec, outFormat); err != nil {
				return err
			}
			a.logger.Debug().Str("in", in).Str("out", out).Stringer("format", outFormat).Msg("converted")
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", in, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format (default from extension)")
	cmd.Flags().StringVar(&to, "to", "", "output format (default from extension)")
	return cmd
}
