package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/yaac/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [names...]",
		Short: "Compile assets if needed and print their URLs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			production, _ := cmd.Flags().GetBool("production")
			verbose, _ := cmd.Flags().GetBool("verbose")

			results, err := c.app.Resolve(cmd.Context(), args, app.ResolveOptions{Production: production})

			out := cmd.OutOrStdout()
			for _, res := range results {
				if !verbose {
					_, _ = fmt.Fprintf(out, "%s\t%s\n", res.Name, res.URL)
					continue
				}
				ops := make([]string, len(res.Operations))
				for i, op := range res.Operations {
					ops[i] = string(op)
				}
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", res.Name, res.URL, res.Outcome, strings.Join(ops, ","))
			}
			return err
		},
	}
	cmd.Flags().BoolP("production", "p", false, "Serve repeated names from the cache without checking sources")
	cmd.Flags().BoolP("verbose", "v", false, "Also print the outcome and the operations performed")
	return cmd
}
