package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/app"
	"github.com/nhle/taskbot/internal/theme"
)

func newSyncDetailsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-details",
		Short: "Refresh status and summary of every linked issue once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateJira(); err != nil {
				return err
			}
			return withContainer(opts, cfg, func(c *app.Container) error {
				syncer, err := c.Syncer()
				if err != nil {
					return err
				}
				res, err := syncer.RunOnce(cmd.Context())
				if err != nil {
					return err
				}

				style := theme.SuccessStyle
				if res.Failed > 0 {
					style = theme.WarningStyle
				}
				printf(cmd, "%s\n", style.Render(fmt.Sprintf(
					"issues: %d  updated: %d  failed: %d", res.Total, res.Updated, res.Failed)))
				return nil
			})
		},
	}
}
