// Command camctl replays camera control scripts and converts, inspects and generates
// camera state files.
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxycam/engine/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the flags shared by every subcommand.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "camctl",
		Short: "Camera controls toolbox",
		Long: `camctl drives orbit camera controls without a window.

Commands:
  replay   run YAML action scripts, in parallel, and save their final state
  convert  convert a state file between JSON, YAML and TOML
  inspect  dump a state file
  fit      compute the state that frames a box or sphere
  config   write or show the configuration

Environment Variables:
  OXYCAM_*  override any configuration key, e.g. OXYCAM_CONTROLS_SMOOTH_TIME=0.5`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML, JSON or TOML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newReplayCmd(a),
		newConvertCmd(a),
		newInspectCmd(a),
		newFitCmd(a),
		newConfigCmd(a),
	)
	return root
}

// load reads the configuration and builds the logger.
func (a *app) load() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
