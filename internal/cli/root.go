// Package cli provides the command-line interface for taskbot.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nhle/taskbot/internal/app"
	"github.com/nhle/taskbot/internal/credential"
	"github.com/nhle/taskbot/internal/logger"
	"github.com/nhle/taskbot/internal/model"
)

// Env carries the process-level collaborators of the commands. Tests
// replace them.
type Env struct {
	Credentials  credential.Store
	NewContainer func(cfg *model.AppConfig) *app.Container
}

// DefaultEnv uses the platform keyring and the Jira tracker.
func DefaultEnv() Env {
	return Env{
		Credentials:  credential.NewKeyring(credential.DefaultDir),
		NewContainer: app.New,
	}
}

type rootOptions struct {
	env        Env
	configPath string
}

// load reads the configuration, fills tokens from the keyring and installs
// the logger.
func (o *rootOptions) load() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return nil, err
	}
	if o.env.Credentials != nil {
		err := credential.Fill(o.env.Credentials, map[string]*string{
			credential.KeyTelegramToken: &cfg.Telegram.Token,
			credential.KeyJiraToken:     &cfg.Jira.Token,
		})
		if err != nil {
			slog.Warn("keyring unavailable, using configured tokens only", "error", err)
		}
	}
	return cfg, nil
}

// NewRootCommand creates the root command for taskbot.
func NewRootCommand(env Env, version string) *cobra.Command {
	opts := &rootOptions{env: env}

	root := &cobra.Command{
		Use:   "taskbot",
		Short: "Chat bot that turns /task messages into Jira issues",
		Long: `taskbot listens for /task commands in Telegram and creates Jira issues,
resolving component, issue type and sprint from free-text labels.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "path to the config file")

	root.AddCommand(
		newServeCommand(opts),
		newParseCommand(opts),
		newSetupCommand(opts),
		newLinksCommand(opts),
		newSyncDetailsCommand(opts),
	)
	return root
}

func withContainer(opts *rootOptions, cfg *model.AppConfig, fn func(c *app.Container) error) error {
	c := opts.env.NewContainer(cfg)
	defer func() {
		if err := c.Close(); err != nil {
			slog.Warn("closing store", "error", err)
		}
	}()
	if err := fn(c); err != nil {
		return err
	}
	return nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
