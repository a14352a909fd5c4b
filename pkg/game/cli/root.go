// Package cli is the lockworks command line: play a scene, list its locks,
// check its parameters.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config    string
	Seed      uint64
	Lang      string
	LocaleDir string
	LogFile   string
	Verbose   bool
	Format    string // "text" | "yaml"

	seedSet bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "yaml"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lockworks",
		Short: "Lockworks - lock picking minigames",
		Long:  "Play the lock minigames of a scene file in the terminal or a window.\nWithout a command, plays the scene in the terminal.",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.seedSet = cmd.Flags().Changed("seed")
			return configureLocale(opts.LocaleDir, opts.Lang)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), opts, &PlayOptions{})
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "scene file (default: built-in scene)")
	cmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 0, "random seed, overrides the scene's")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en-US", "language for messages (BCP 47)")
	cmd.PersistentFlags().StringVar(&opts.LocaleDir, "locale-dir", "locales", "directory holding <lang>/LC_MESSAGES/default.po")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log", "", "write logs to this file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|yaml)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewBindingsCommand(opts))

	return cmd
}

// LoadScene reads the scene named by --config, or the built-in one.
func (o *RootOptions) LoadScene() (*config.File, error) {
	if o.Config == "" {
		return config.Default(), nil
	}
	return config.Load(o.Config)
}

// RNG is the scene's random source with --seed applied.
func (o *RootOptions) RNG(scene *config.File) lock.RNG {
	if o.seedSet {
		return scene.RNG(&o.Seed)
	}
	return scene.RNG(nil)
}

// Logger builds the zap logger. Without --log, quiet discards everything
// (the terminal is in use) and otherwise logs go to stderr.
func (o *RootOptions) Logger(quiet bool) (*zap.Logger, error) {
	if o.LogFile == "" && quiet {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if o.Verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	out := "stderr"
	if o.LogFile != "" {
		out = o.LogFile
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}
	return cfg.Build()
}

// configureLocale points gotext at the translations for lang.
func configureLocale(dir, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	gotext.Configure(dir, LocaleName(tag), "default")
	return nil
}

// LocaleName turns a language tag into the gettext directory name, e.g.
// en-GB into en_GB. A bare language gets its most likely region.
func LocaleName(tag language.Tag) string {
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.No {
		return base.String()
	}
	return base.String() + "_" + region.String()
}
