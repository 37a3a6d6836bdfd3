package main

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <state-file>",
		Short: "Dump a state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0], format)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			config := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			config.Fdump(w, rec)

			s := common.NewSpherical(rec.Spherical[0], rec.Spherical[1], rec.Spherical[2])
			fmt.Fprintf(w, "distance: %g\n", s.Radius)
			fmt.Fprintf(w, "polar:    %.4f rad (%.2f deg)\n", s.Phi, s.Phi*180/math.Pi)
			fmt.Fprintf(w, "azimuth:  %.4f rad (%.2f deg), normalized %.4f rad\n",
				s.Theta, s.Theta*180/math.Pi, common.NormalizeAngle(s.Theta))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (default from extension)")
	return cmd
}
