package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. TASKBOT_JIRA_URL.
const envPrefix = "TASKBOT"

// TelegramConfig holds chat transport settings.
type TelegramConfig struct {
	// Token is the bot token. When empty it is read from the keyring.
	Token string `mapstructure:"token" yaml:"token"`

	// PollTimeoutSec is the long-poll timeout for getUpdates.
	PollTimeoutSec int `mapstructure:"poll_timeout_sec" yaml:"poll_timeout_sec"`
}

// JiraConfig holds the issue tracker connection and catalog defaults.
type JiraConfig struct {
	// URL is the root URL of the Jira Server/DC instance.
	URL string `mapstructure:"url" yaml:"url"`

	// Token is the Personal Access Token. When empty it is read from the keyring.
	Token string `mapstructure:"token" yaml:"token"`

	// ProjectKey is used when a command does not carry project:.
	ProjectKey string `mapstructure:"project_key" yaml:"project_key"`

	DefaultComponent string   `mapstructure:"default_component" yaml:"default_component"`
	DefaultIssueType string   `mapstructure:"default_issue_type" yaml:"default_issue_type"`
	IssueTypes       []string `mapstructure:"issue_types" yaml:"issue_types"`

	// DeprecatedPrefix excludes components whose name starts with it.
	DeprecatedPrefix string `mapstructure:"deprecated_prefix" yaml:"deprecated_prefix"`

	// FallbackComponents is served when the remote catalog is unavailable.
	FallbackComponents []string `mapstructure:"fallback_components" yaml:"fallback_components"`

	// Labels are added to every created issue.
	Labels []string `mapstructure:"labels" yaml:"labels"`

	// LinkType is the issue link type name used for link:.
	LinkType string `mapstructure:"link_type" yaml:"link_type"`
}

// AccessConfig restricts who may drive the bot.
type AccessConfig struct {
	// AllowedUsers lists usernames or numeric user ids. Empty allows everyone.
	AllowedUsers []string `mapstructure:"allowed_users" yaml:"allowed_users"`
}

// StoreConfig selects the relational backend for the link table.
type StoreConfig struct {
	// Driver is "sqlite" or "pgx".
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SyncConfig controls the background issue-details refresh.
type SyncConfig struct {
	// IntervalSec disables the syncer when zero.
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Jira     JiraConfig     `mapstructure:"jira" yaml:"jira"`
	Access   AccessConfig   `mapstructure:"access" yaml:"access"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Sync     SyncConfig     `mapstructure:"sync" yaml:"sync"`
}

// legacyEnv maps config keys to the environment variable names the bot
// has historically been deployed with.
var legacyEnv = map[string]string{
	"telegram.token":         "TELEGRAM_BOT_TOKEN",
	"jira.url":               "JIRA_URL",
	"jira.token":             "JIRA_API_TOKEN",
	"jira.project_key":       "JIRA_PROJECT_KEY",
	"jira.default_component": "JIRA_COMPONENT_NAME",
	"access.allowed_users":   "ALLOWED_USERS",
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskbot/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskbot", "config.yaml")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskbot.db"
	}
	return filepath.Join(home, ".local", "share", "taskbot", "taskbot.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Telegram: TelegramConfig{PollTimeoutSec: 60},
		Jira: JiraConfig{
			ProjectKey:         "AAI",
			DefaultComponent:   "org",
			DefaultIssueType:   IssueTypeStory,
			IssueTypes:         []string{IssueTypeStory, IssueTypeBug},
			DeprecatedPrefix:   "DEPRECATED",
			FallbackComponents: []string{"org", "devops", "avia-parametry"},
			LinkType:           "Relates",
		},
		Store: StoreConfig{Driver: "sqlite", DSN: DefaultDBPath()},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("telegram.poll_timeout_sec", d.Telegram.PollTimeoutSec)
	v.SetDefault("jira.project_key", d.Jira.ProjectKey)
	v.SetDefault("jira.default_component", d.Jira.DefaultComponent)
	v.SetDefault("jira.default_issue_type", d.Jira.DefaultIssueType)
	v.SetDefault("jira.issue_types", d.Jira.IssueTypes)
	v.SetDefault("jira.deprecated_prefix", d.Jira.DeprecatedPrefix)
	v.SetDefault("jira.fallback_components", d.Jira.FallbackComponents)
	v.SetDefault("jira.link_type", d.Jira.LinkType)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("sync.interval_sec", 0)
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// layered over defaults and under environment overrides. A .env file in the
// working directory is loaded first. If the config file does not exist the
// defaults plus environment are used.
func LoadConfig(path string) (*AppConfig, error) {
	// A missing .env is the common case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Jira.ProjectKey = strings.ToUpper(strings.TrimSpace(cfg.Jira.ProjectKey))
	cfg.Access.AllowedUsers = splitList(cfg.Access.AllowedUsers)
	cfg.Jira.Labels = splitList(cfg.Jira.Labels)
	if len(cfg.Jira.IssueTypes) == 0 {
		cfg.Jira.IssueTypes = []string{IssueTypeStory, IssueTypeBug}
	}

	return cfg, nil
}

// splitList flattens comma-separated entries and drops blanks, so both
// YAML lists and "a, b" environment strings are accepted.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate reports every setting the bot needs that is still missing.
// Tokens are checked after keyring resolution, so call it last.
func (c *AppConfig) Validate() error {
	var missing []string
	if c.Telegram.Token == "" {
		missing = append(missing, "telegram.token (TELEGRAM_BOT_TOKEN)")
	}
	return missingError(append(missing, c.missingJira()...))
}

// ValidateJira reports missing tracker settings only.
func (c *AppConfig) ValidateJira() error {
	return missingError(c.missingJira())
}

func (c *AppConfig) missingJira() []string {
	var missing []string
	if c.Jira.URL == "" {
		missing = append(missing, "jira.url (JIRA_URL)")
	}
	if c.Jira.Token == "" {
		missing = append(missing, "jira.token (JIRA_API_TOKEN)")
	}
	return missing
}

func missingError(missing []string) error {
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. Tokens are never written; they
// belong in the keyring.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	jira := cfg.Jira
	jira.Token = ""
	telegram := cfg.Telegram
	telegram.Token = ""

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("telegram", telegram)
	v.Set("jira", jira)
	v.Set("access", cfg.Access)
	v.Set("store", cfg.Store)
	v.Set("log", cfg.Log)
	v.Set("sync", cfg.Sync)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
