package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxycam/engine/replay"
	"github.com/Carmen-Shannon/oxycam/engine/state"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		workers   int
		outDir    string
		format    string
		listNames bool
	)

	cmd := &cobra.Command{
		Use:   "replay [script.yaml...]",
		Short: "Run action scripts and report their final state",
		Long: `Run one or more YAML action scripts. Each script builds its own camera and
controls, so scripts run in parallel. With --out, the final state of every script is
written to <out>/<script>.<format>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listNames {
				for _, name := range replay.Actions() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("replay needs at least one script")
			}

			outFormat, err := state.ParseFormat(format)
			if err != nil {
				return err
			}

			scripts := make([]replay.Script, 0, len(args))
			for _, path := range args {
				script, err := replay.LoadScript(path)
				if err != nil {
					return err
				}
				scripts = append(scripts, script)
			}

			a.logger.Debug().Int("scripts", len(scripts)).Int("workers", workers).Msg("replay batch")
			results := replay.RunBatch(cmd.Context(), scripts, workers, a.logger)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCRIPT\tFRAMES\tSECONDS\tSETTLED\tRESULT")
			failed := 0
			for i, result := range results {
				status := "ok"
				if result.Err != nil {
					status = result.Err.Error()
					failed++
				}
				fmt.Fprintf(tw, "%s\t%d\t%.3f\t%t\t%s\n", result.Name, result.Frames, result.Elapsed, result.Settled, status)

				if outDir != "" {
					name := strings.TrimSuffix(filepath.Base(args[i]), filepath.Ext(args[i]))
					path := filepath.Join(outDir, name+"."+outFormat.String())
					if err := writeRecord(path, result.Record, outFormat); err != nil {
						return err
					}
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return errors.Errorf("%d of %d scripts failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "scripts run at once")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for final state files")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "state file format: json, yaml or toml")
	cmd.Flags().BoolVar(&listNames, "actions", false, "list the available actions and exit")
	return cmd
}
