package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/app"
	"github.com/nhle/taskbot/internal/theme"
)

func newParseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text...>",
		Short: "Resolve /task arguments without creating an issue",
		Example: `  taskbot parse "Fix login bug component: devops type: bug sprint: active"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateJira(); err != nil {
				return err
			}

			return withContainer(opts, cfg, func(c *app.Container) error {
				res := c.Parser.Parse(cmd.Context(), strings.Join(args, " "))
				if res.ShouldStop() {
					printf(cmd, "%s\n", theme.ErrorStyle.Render(res.Diagnostic))
					return nil
				}

				req := res.Request
				sprint := "backlog"
				if req.SprintID != nil {
					sprint = strconv.Itoa(*req.SprintID)
				}
				printf(cmd, "%s\n", theme.Panel("Task request", []theme.Field{
					{Label: "Project", Value: req.ProjectKey},
					{Label: "Summary", Value: req.Summary},
					{Label: "Type", Value: req.IssueType},
					{Label: "Component", Value: req.Component},
					{Label: "Sprint", Value: sprint},
					{Label: "Link", Value: req.LinkTarget},
					{Label: "Labels", Value: strings.Join(req.Labels, ", ")},
					{Label: "Description", Value: req.Description},
				}))
				return nil
			})
		},
	}
}
