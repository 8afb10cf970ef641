package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tubelist/internal/logging"
	"tubelist/internal/playlist"
	"tubelist/internal/playliststore"
	"tubelist/internal/services"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var idValues []string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new playlist, optionally seeded with video ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			ids := parseIDs(idValues)
			runCtx := ctx.commandCtx(cmd, title)

			store, err := ctx.store()
			if err != nil {
				return err
			}
			var created *playlist.Playlist
			err = withPlaylistLock(runCtx, store, title, func() error {
				existing, found, err := store.Load(title)
				if err != nil {
					return err
				}
				if found {
					return services.Wrap(services.ErrValidation, "cli", "create",
						fmt.Sprintf("playlist %q already exists with %d videos", title, existing.NumItems()), nil)
				}
				p := playlist.New(title)
				p.AddVideos(ids)
				if err := ctx.reconcile(runCtx, p); err != nil {
					return err
				}
				if err := store.Save(p); err != nil {
					return err
				}
				created = p
				return nil
			})
			if err != nil {
				return err
			}

			ctx.loggerFor(runCtx).Info("playlist created", logging.Int("videos", created.NumItems()))
			fmt.Fprintln(cmd.OutOrStdout(), created.String())
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&idValues, "ids", "i", nil, "Video ids to seed the playlist with (comma or space separated)")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var idValues []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add videos to a playlist and fetch their metadata",
		Long: `Add videos to a playlist, creating it when it does not exist yet.

Ids already in the playlist are ignored. Every video still missing metadata is
looked up in one YouTube Data API request; if any of them cannot be found the
command fails and the playlist is left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(idValues)
			if err != nil {
				return err
			}
			title := args[0]
			runCtx := ctx.commandCtx(cmd, title)

			p, err := ctx.mutate(runCtx, title, func(p *playlist.Playlist) error {
				before := p.NumItems()
				p.AddVideos(ids)
				ctx.loggerFor(runCtx).Debug("videos added", logging.Int("added", p.NumItems()-before))
				return ctx.reconcile(runCtx, p)
			})
			if err != nil {
				return err
			}
			printSaved(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&idValues, "ids", "i", nil, "Video ids to add (comma or space separated)")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var idValues []string

	cmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove videos from a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(idValues)
			if err != nil {
				return err
			}
			title := args[0]
			runCtx := ctx.commandCtx(cmd, title)

			p, err := ctx.mutate(runCtx, title, func(p *playlist.Playlist) error {
				before := p.NumItems()
				p.RemoveVideos(ids)
				ctx.loggerFor(runCtx).Debug("videos removed", logging.Int("removed", before-p.NumItems()))
				return nil
			})
			if err != nil {
				return err
			}
			printSaved(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&idValues, "ids", "i", nil, "Video ids to remove (comma or space separated)")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}

// mutate loads title (or starts it empty), applies fn, and saves the result,
// all under the playlist lock. Nothing is saved when fn fails.
func (c *commandContext) mutate(ctx context.Context, title string, fn func(*playlist.Playlist) error) (*playlist.Playlist, error) {
	store, err := c.store()
	if err != nil {
		return nil, err
	}
	var result *playlist.Playlist
	err = withPlaylistLock(ctx, store, title, func() error {
		p, err := loadOrNew(store, title)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := store.Save(p); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.loggerFor(ctx).Info("playlist saved",
		logging.Int("videos", result.NumItems()),
		logging.String("path", store.Path(title)))
	return result, nil
}

// reconcile fetches metadata for every unfetched video in p.
func (c *commandContext) reconcile(ctx context.Context, p *playlist.Playlist) error {
	if len(p.Pending()) == 0 {
		return nil
	}
	provider, release, err := c.provider(ctx)
	if err != nil {
		return err
	}
	defer release()

	err = playlist.NewReconciler(provider).Reconcile(ctx, p)
	if err != nil {
		logging.WarnWithContext(c.loggerFor(ctx), "metadata reconciliation failed", "reconcile_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the video ids; deleted or private videos cannot be fetched"),
			logging.String(logging.FieldImpact, "playlist was not saved"))
	}
	return err
}

func loadOrNew(store *playliststore.Store, title string) (*playlist.Playlist, error) {
	p, found, err := store.Load(title)
	if err != nil {
		return nil, err
	}
	if !found {
		return playlist.New(title), nil
	}
	return p, nil
}

func printSaved(out io.Writer, p *playlist.Playlist) {
	fmt.Fprintf(out, "Saved %q (%d videos)\n", p.Title(), p.NumItems())
	printURL(out, p)
}

func printURL(out io.Writer, p *playlist.Playlist) {
	fmt.Fprintln(out, "Playlist URL:")
	fmt.Fprintln(out, p.URL())
}
