package main

import (
	"github.com/spf13/cobra"

	"tubelist/internal/logging"
	"tubelist/internal/playlist"
	"tubelist/internal/services"
)

// printTarget is what `print` resolves its flags into: exactly one of a stored
// playlist title or an ad hoc list of ids.
type printTarget struct {
	title string
	ids   []string
	byIDs bool
}

func resolvePrintTarget(title string, idValues []string, idsSet bool) (printTarget, error) {
	if idsSet {
		ids := parseIDs(idValues)
		if len(ids) == 0 {
			return printTarget{}, services.Wrap(services.ErrValidation, "cli", "print", "--ids requires at least one video id", nil)
		}
		return printTarget{ids: ids, byIDs: true}, nil
	}
	return printTarget{title: title}, nil
}

func newPrintCommand(ctx *commandContext) *cobra.Command {
	var title string
	var idValues []string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the watch URL of a stored playlist or of a list of ids",
		Long: `Print the watch URL for a stored playlist (--title) or for an ad hoc list
of video ids (--ids). Nothing is fetched or saved.

Naming a playlist that does not exist yet leaves an empty document behind and
prints the bare base URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolvePrintTarget(title, idValues, cmd.Flags().Changed("ids"))
			if err != nil {
				return err
			}

			var p *playlist.Playlist
			if target.byIDs {
				p = playlist.New("")
				p.AddVideos(target.ids)
			} else {
				store, err := ctx.store()
				if err != nil {
					return err
				}
				p, err = loadOrNew(store, target.title)
				if err != nil {
					return err
				}
			}

			ctx.loggerFor(ctx.commandCtx(cmd, target.title)).Debug("playlist resolved",
				logging.Int("videos", p.NumItems()),
				logging.Bool("ad_hoc", target.byIDs))
			printURL(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of a stored playlist")
	cmd.Flags().StringSliceVarP(&idValues, "ids", "i", nil, "Video ids (comma or space separated)")
	cmd.MarkFlagsMutuallyExclusive("title", "ids")
	cmd.MarkFlagsOneRequired("title", "ids")
	return cmd
}
