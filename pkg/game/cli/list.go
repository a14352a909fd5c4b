package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// LockSummary is one row of the list command.
type LockSummary struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	Title        string `yaml:"title"`
	Locked       bool   `yaml:"locked"`
	RequiredTool string `yaml:"requiredTool,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the locks of a scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := rootOpts.LoadScene()
			if err != nil {
				return err
			}
			rows := make([]LockSummary, 0, len(scene.Locks))
			for _, d := range scene.Locks {
				rows = append(rows, LockSummary{
					Name:         d.Name,
					Kind:         d.Kind,
					Title:        d.DisplayName(),
					Locked:       d.IsLocked(),
					RequiredTool: d.RequiredTool,
				})
			}
			if rootOpts.Format == "yaml" {
				return writeYAML(cmd.OutOrStdout(), rows)
			}
			return writeLockTable(cmd.OutOrStdout(), rows)
		},
	}
}

func writeLockTable(out io.Writer, rows []LockSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tTITLE\tLOCKED\tTOOL")
	for _, r := range rows {
		tool := r.RequiredTool
		if tool == "" {
			tool = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", r.Name, r.Kind, r.Title, r.Locked, tool)
	}
	return w.Flush()
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
