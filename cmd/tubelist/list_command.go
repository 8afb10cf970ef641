package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}
			titles, err := store.List()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, titles)
			}
			out := cmd.OutOrStdout()
			if len(titles) == 0 {
				fmt.Fprintf(out, "No playlists in %s\n", store.Dir())
				return nil
			}
			for _, title := range titles {
				fmt.Fprintln(out, title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print titles as a JSON array")
	return cmd
}
