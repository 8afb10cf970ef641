package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tubelist/internal/services"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show the videos of a stored playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			store, err := ctx.store()
			if err != nil {
				return err
			}
			exists, err := store.Exists(title)
			if err != nil {
				return err
			}
			if !exists {
				return services.Wrap(services.ErrValidation, "cli", "show", fmt.Sprintf("playlist %q not found", title), nil)
			}
			p, _, err := store.Load(title)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, p)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader(p.Title(), colorize) {
				fmt.Fprintln(out, line)
			}
			if p.NumItems() == 0 {
				fmt.Fprintln(out, "No videos")
				printURL(out, p)
				return nil
			}

			rows := make([][]string, 0, p.NumItems())
			for i, v := range p.Videos() {
				fetched := "no"
				if v.Fetched {
					fetched = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					v.ID,
					v.Title,
					v.PublishedDate(),
					fetched,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "ID", "Title", "Published", "Fetched"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			printURL(out, p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored document as JSON")
	return cmd
}
