package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lockworks/pkg/game/activator"
	"lockworks/pkg/game/renderer"
	"lockworks/pkg/game/renderer/ebiten"
	"lockworks/pkg/game/renderer/tui"
	"lockworks/pkg/game/state"
)

// PlayOptions holds the play command's flags.
type PlayOptions struct {
	GUI  bool
	Lock string
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a scene",
		Long: `Play the locks of a scene. Pick a lock with tab, activate it with e and
leave it with x. The terminal front-end needs an interactive terminal;
--gui opens a window instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.GUI, "gui", false, "open a window instead of using the terminal")
	cmd.Flags().StringVar(&opts.Lock, "lock", "", "select and activate this lock first")

	return cmd
}

// NewGame builds the play state for a scene, with the presenter bound to it.
func NewGame(rootOpts *RootOptions, logger *zap.Logger) (*state.Game, *renderer.EventPresenter, error) {
	scene, err := rootOpts.LoadScene()
	if err != nil {
		return nil, nil, err
	}
	presenter := renderer.NewEventPresenter(nil, logger)
	g, err := state.New(scene,
		activator.WithLogger(logger),
		activator.WithRNG(rootOpts.RNG(scene)),
		activator.WithPresenter(presenter),
	)
	if err != nil {
		return nil, nil, err
	}
	presenter.Bind(g)
	return g, presenter, nil
}

// selectLock selects the named lock and activates it.
func selectLock(g *state.Game, name string) error {
	for i, a := range g.Locks {
		if a.Name() == name {
			g.Select(i)
			return g.Activate()
		}
	}
	return fmt.Errorf("no lock named %q in the scene", name)
}

// printSummary writes the opened count and the message log once the
// front-end has closed.
func printSummary(out io.Writer, g *state.Game) {
	fmt.Fprintln(out, renderer.FormatText("TITLE{GT{TITLE}}  %d/%d GT{OPENED}", g.Opened.Size(), len(g.Locks)))
	for _, msg := range g.Messages {
		fmt.Fprintln(out, "  "+renderer.FormatText(msg))
	}
}

func runPlay(ctx context.Context, out io.Writer, rootOpts *RootOptions, opts *PlayOptions) error {
	logger, err := rootOpts.Logger(!opts.GUI)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))

	g, presenter, err := NewGame(rootOpts, logger)
	if err != nil {
		return err
	}
	if opts.Lock != "" {
		if err := selectLock(g, opts.Lock); err != nil {
			return err
		}
	}

	var r renderer.Renderer
	if opts.GUI {
		r = ebiten.New(presenter, logger)
	} else {
		r = tui.New(presenter, logger)
	}
	renderer.SetRenderer(r)
	renderer.Init()
	renderer.Clear()

	logger.Info("scene started", zap.String("scene", rootOpts.Config), zap.Int("locks", len(g.Locks)))
	if err := r.Run(ctx, g); err != nil {
		return err
	}
	logger.Info("scene finished", zap.Int("opened", g.Opened.Size()))
	printSummary(out, g)
	return nil
}
