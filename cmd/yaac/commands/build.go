package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/yaac/internal/ui/output"
	"go.trai.ch/yaac/internal/ui/style"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile every asset and write the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			styles := style.New(output.NewRenderer(out))
			_, _ = fmt.Fprintf(out, "%s %d assets written to %s\n",
				styles.Success.Render(style.Check), len(report.Assets), report.Dest)
			return nil
		},
	}
}
