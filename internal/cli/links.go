package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/app"
	"github.com/nhle/taskbot/internal/theme"
)

func newLinksCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Maintain the message-to-issue link table",
	}
	cmd.AddCommand(newLinksAddCommand(opts), newLinksListCommand(opts), newLinksRmCommand(opts))
	return cmd
}

func newLinksAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <message_ref> <ISSUE-KEY>",
		Short: "Link a message to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return withContainer(opts, cfg, func(c *app.Container) error {
				s, err := c.Store()
				if err != nil {
					return err
				}
				link, err := s.InsertLink(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", theme.SuccessStyle.Render("✓ linked "+link.MessageRef+" → "+link.JiraKey))
				return nil
			})
		},
	}
}

func newLinksListCommand(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list [message_ref]",
		Short: "List links, or the issues linked to one message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return withContainer(opts, cfg, func(c *app.Container) error {
				s, err := c.Store()
				if err != nil {
					return err
				}

				if len(args) == 1 {
					keys, err := s.KeysByMessageRef(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if len(keys) > 0 {
						printf(cmd, "%s\n", strings.Join(keys, "\n"))
					}
					return nil
				}

				links, err := s.ListLinks(cmd.Context(), limit)
				if err != nil {
					return err
				}
				for _, l := range links {
					printf(cmd, "%s  %-12s %s\n", l.MessageRef, l.JiraKey,
						theme.HelpStyle.Render(l.CreatedAt.Format("2006-01-02 15:04")))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of links to show (0 for all)")
	return cmd
}

func newLinksRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <message_ref> <ISSUE-KEY>",
		Aliases: []string{"remove"},
		Short:   "Remove a link",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return withContainer(opts, cfg, func(c *app.Container) error {
				s, err := c.Store()
				if err != nil {
					return err
				}
				if err := s.DeleteLink(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				printf(cmd, "%s\n", theme.SuccessStyle.Render("✓ removed"))
				return nil
			})
		},
	}
}
