package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubelist/internal/preflight"
	"tubelist/internal/services"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, the metadata cache and YouTube API access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configDetail := ctx.configPath
			if configDetail == "" {
				configDetail = "defaults"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configDetail, colorize))
			cacheDetail := "disabled"
			if cfg.MetadataCache.Enabled {
				cacheDetail = cfg.MetadataCache.Path
			}
			fmt.Fprintln(out, renderStatusLine("Cache", statusInfo, cacheDetail, colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(ctx.commandCtx(cmd, ""), cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			if preflight.Failed(results) {
				return services.Wrap(services.ErrConfiguration, "cli", "status", "one or more checks failed", nil)
			}
			return nil
		},
	}
}
