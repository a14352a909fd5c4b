package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"lockworks/pkg/engine/input"
)

// ErrCheckFailed is returned when a scene has invalid locks.
var ErrCheckFailed = errors.New("scene check failed")

// CheckResult is the outcome of checking one lock.
type CheckResult struct {
	Lock  string `yaml:"lock"`
	OK    bool   `yaml:"ok"`
	Error string `yaml:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check every lock of a scene",
		Long: `Load the scene and activate every lock once, reporting parameters the
lock rejects. Exits non-zero when any lock fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := rootOpts.LoadScene()
			if err != nil {
				return err
			}
			problems := scene.Check(rootOpts.RNG(scene))

			results := make([]CheckResult, 0, len(scene.Locks))
			for _, name := range scene.Names() {
				r := CheckResult{Lock: name, OK: true}
				if err := problems[name]; err != nil {
					r.OK = false
					r.Error = err.Error()
				}
				results = append(results, r)
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "yaml" {
				if err := writeYAML(out, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.OK {
						fmt.Fprintf(out, "ok    %s\n", r.Lock)
					} else {
						fmt.Fprintf(out, "FAIL  %s: %s\n", r.Lock, r.Error)
					}
				}
			}
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d of %d locks", ErrCheckFailed, len(problems), len(results))
			}
			return nil
		},
	}
}

// NewBindingsCommand creates the bindings command.
func NewBindingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "Show the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byAction := input.GetBindingsByAction()
			actions := make([]input.Action, 0, len(byAction))
			for a := range byAction {
				actions = append(actions, a)
			}
			slices.Sort(actions)

			out := cmd.OutOrStdout()
			if rootOpts.Format == "yaml" {
				named := make(map[string][]string, len(actions))
				for _, a := range actions {
					named[input.ActionName(a)] = byAction[a]
				}
				return writeYAML(out, named)
			}
			for _, a := range actions {
				fmt.Fprintf(out, "%-16s %s\n", input.ActionName(a), strings.Join(byAction[a], ", "))
			}
			return nil
		},
	}
}
