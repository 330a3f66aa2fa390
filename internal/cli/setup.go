package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/credential"
	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/theme"
)

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("enter a full URL, e.g. https://jira.example.com")
	}
	return nil
}

func newSetupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively configure the tracker and chat tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			var jiraToken, telegramToken string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Jira URL").
						Description("Jira server URL (e.g., https://jira.example.com)").
						Value(&cfg.Jira.URL).
						Validate(validateURL),
					huh.NewInput().
						Title("Project key").
						Description("Project used when a command has no project:").
						Value(&cfg.Jira.ProjectKey).
						Validate(validateRequired("Project key")),
					huh.NewInput().
						Title("Default component").
						Value(&cfg.Jira.DefaultComponent).
						Validate(validateRequired("Default component")),
				),
				huh.NewGroup(
					huh.NewInput().
						Title("Jira Personal Access Token").
						Description("Leave empty to keep the stored token").
						EchoMode(huh.EchoModePassword).
						Value(&jiraToken),
					huh.NewInput().
						Title("Telegram bot token").
						Description("Leave empty to keep the stored token").
						EchoMode(huh.EchoModePassword).
						Value(&telegramToken),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("running setup form: %w", err)
			}

			return saveSetup(opts, cfg, jiraToken, telegramToken, func(s string) { printf(cmd, "%s\n", s) })
		},
	}
}

// saveSetup stores non-empty tokens in the keyring and writes the rest of
// cfg to the config file.
func saveSetup(opts *rootOptions, cfg *model.AppConfig, jiraToken, telegramToken string, out func(string)) error {
	cfg.Jira.URL = strings.TrimSpace(cfg.Jira.URL)
	cfg.Jira.ProjectKey = strings.ToUpper(strings.TrimSpace(cfg.Jira.ProjectKey))

	tokens := map[string]string{
		credential.KeyJiraToken:     jiraToken,
		credential.KeyTelegramToken: telegramToken,
	}
	for key, v := range tokens {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if err := opts.env.Credentials.Set(key, v); err != nil {
			return err
		}
	}

	if err := model.SaveConfig(opts.configPath, cfg); err != nil {
		return err
	}
	out(theme.SuccessStyle.Render("✓ Configuration saved to " + opts.configPath))
	return nil
}
