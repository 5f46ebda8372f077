// Package cli implements the virtuallist command.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	tcellbackend "github.com/odvcencio/furry-virtual/backend/tcell"
	"github.com/odvcencio/furry-virtual/internal/config"
)

// ErrNotTerminal is returned when stdout is not a terminal.
var ErrNotTerminal = errors.New("virtuallist needs an interactive terminal")

type rootOptions struct {
	configPath string
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalRows(f *os.File) int {
	_, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return rows
}

// NewRootCmd creates the virtuallist root command.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "virtuallist",
		Short:         "Browse a large list in a virtualized terminal view",
		Long:          "virtuallist renders only the rows in view, measures them after each frame and keeps a hover-revealed scrollbar in step with the scroll offset.",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.IntP("count", "n", config.DefaultItemCount, "number of generated items")
	flags.Float64P("estimated-height", "e", 0, "estimated item height in rows (required unless set in config)")
	flags.Float64("height", config.DefaultListHeight, "container height in rows, clamped to the terminal")
	flags.StringP("renderer", "r", config.RendererText, "item renderer: text, markdown or code")
	flags.String("language", "", "code renderer language, detected when empty")
	flags.String("style", "", "code renderer chroma style")
	flags.StringP("source", "f", "", "read items from a file (markdown/code items are separated by a line holding %%)")
	flags.Duration("hide-delay", config.DefaultHideDelay, "how long the scrollbar lingers after the pointer leaves")
	flags.Bool("always-show", false, "always draw the scrollbar when content overflows")
	flags.String("log-level", config.DefaultLogLevel, "log level")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "shorthand for --log-level debug")
	return cmd
}

// resolveConfig loads the config file, applies explicitly set flags and
// validates the result.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.List.ItemCount, _ = flags.GetInt("count")
	}
	if flags.Changed("estimated-height") {
		cfg.List.EstimatedItemHeight, _ = flags.GetFloat64("estimated-height")
	}
	if flags.Changed("height") {
		cfg.List.Height, _ = flags.GetFloat64("height")
	}
	if flags.Changed("renderer") {
		cfg.Renderer.Kind, _ = flags.GetString("renderer")
	}
	if flags.Changed("language") {
		cfg.Renderer.Language, _ = flags.GetString("language")
	}
	if flags.Changed("style") {
		cfg.Renderer.Style, _ = flags.GetString("style")
	}
	if flags.Changed("source") {
		cfg.List.Source, _ = flags.GetString("source")
	}
	if flags.Changed("hide-delay") {
		cfg.Scrollbar.HideDelay, _ = flags.GetDuration("hide-delay")
	}
	if flags.Changed("always-show") {
		cfg.Scrollbar.AlwaysShow, _ = flags.GetBool("always-show")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.Logging.File, _ = flags.GetString("log-file")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	logger, closer, err := config.NewLogger(cfg.Logging, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	items, err := loadItems(cfg)
	if err != nil {
		return err
	}
	be, err := tcellbackend.New()
	if err != nil {
		return err
	}
	app, _, err := newApp(cfg, items, be, terminalRows(os.Stdout), &logger)
	if err != nil {
		return err
	}
	logger.Info().
		Int("items", len(items)).
		Str("renderer", cfg.Renderer.Kind).
		Float64("estimated_height", cfg.List.EstimatedItemHeight).
		Msg("starting")
	if err := app.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

const rootCmdExample = `  # Ten thousand generated rows, one row each
  virtuallist -n 10000 -e 1

  # Markdown items that wrap to varying heights
  virtuallist -n 500 -e 3 -r markdown

  # Highlighted Go snippets read from a file
  virtuallist -f snippets.txt -e 5 -r code --language go

  # Settings from a file, with debug logs
  virtuallist -c virtuallist.yaml --debug --log-file /tmp/virtuallist.log`
