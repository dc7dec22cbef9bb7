package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"arrivq/internal/sched"
	"arrivq/internal/script"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the built-in scenario",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return replay(cmd, script.Demo())
	},
}

var runCmd = &cobra.Command{
	Use:   "run <script.yml>",
	Short: "Replay a YAML script of operations",
	Long: `Replay a YAML script of operations against a fresh manager.

Example script:

  steps:
    - op: add
      id: build
      priority: 5
    - op: list
    - op: execute
    - op: cancel
      id: build`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read script")
		}
		s, err := script.Parse(data)
		if err != nil {
			return errors.Wrap(err, args[0])
		}
		return replay(cmd, s)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
}

// replay runs s against a manager built from the loaded config. Failed steps
// are printed, not returned: every manager error leaves it usable.
func replay(cmd *cobra.Command, s script.Script) (err error) {
	cfg, err := sched.Load(configPath)
	if err != nil {
		return err
	}
	if journalPath != "" {
		cfg.Journal = journalPath
	}

	logger := newLogger(cmd, cfg)
	opts := []sched.Option{
		sched.WithClock(cfg.NewClock()),
		sched.WithLogger(logger),
	}

	if cfg.Journal != "" {
		j, jerr := sched.OpenJournal(cfg.Journal)
		if jerr != nil {
			return jerr
		}
		defer func() {
			if cerr := j.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "close journal")
			}
		}()
		opts = append(opts, sched.WithObserver(j.Record))
	}

	m := sched.NewManager(opts...)
	logger.Info().Int("steps", len(s.Steps)).Str("clock", cfg.Clock).Msg("replaying script")

	outcomes := script.Run(m, s)
	newPrinter(cmd.OutOrStdout(), cfg.Color).outcomes(outcomes)

	logger.Info().Int("pending", m.Len()).Msg("script finished")
	return nil
}

func newLogger(cmd *cobra.Command, cfg sched.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: !cfg.Color}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
