package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yaac/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Watch and serve compiled assets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), app.ServeOptions{Addr: addr})
		},
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1:4000", "Address to listen on")
	return cmd
}
