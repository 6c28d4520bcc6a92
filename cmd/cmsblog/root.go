package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/cmsblog"
	"github.com/eringen/cmsblog/contentful"
)

// config is read from an optional config file and the environment. Keys
// map to upper-case environment variables, e.g. contentful_space_id is
// CONTENTFUL_SPACE_ID.
type config struct {
	SpaceID            string        `mapstructure:"contentful_space_id"`
	AccessToken        string        `mapstructure:"contentful_access_token"`
	PreviewAccessToken string        `mapstructure:"contentful_preview_access_token"`
	PreviewSecret      string        `mapstructure:"contentful_preview_secret"`
	RevalidateSecret   string        `mapstructure:"contentful_revalidate_secret"`
	SessionSecret      string        `mapstructure:"session_secret"`
	SiteName           string        `mapstructure:"site_name"`
	SiteURL            string        `mapstructure:"site_url"`
	SiteDescription    string        `mapstructure:"site_description"`
	Addr               string        `mapstructure:"addr"`
	CookieSecure       bool          `mapstructure:"cookie_secure"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	StaticDir          string        `mapstructure:"static_dir"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
}

var (
	cfgFile   string
	appConfig config
	logger    = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "cmsblog",
	Short: "A blog front-end for Contentful",
	Long: `cmsblog renders blog posts stored in Contentful. It can serve them
live, with draft previews, or export the published site as static files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initializeConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cmsblog.yaml)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("contentful_space_id", "")
	v.SetDefault("contentful_access_token", "")
	v.SetDefault("contentful_preview_access_token", "")
	v.SetDefault("contentful_preview_secret", "")
	v.SetDefault("contentful_revalidate_secret", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("site_name", "Blog")
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("site_description", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("static_dir", "static")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cmsblog")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("addr", f); err != nil {
			return fmt.Errorf("bind addr flag: %w", err)
		}
	}

	var notFound viper.ConfigFileNotFoundError
	configErr := v.ReadInConfig()
	if configErr != nil && (cfgFile != "" || !errors.As(configErr, &notFound)) {
		return fmt.Errorf("failed to read config file: %w", configErr)
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	logger = newLogger(appConfig)
	slog.SetDefault(logger)
	if configErr == nil {
		logger.Info("using config file", slog.String("Path", v.ConfigFileUsed()))
	}
	return nil
}

func newLogger(cfg config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newApp(cfg config) *cmsblog.App {
	client := contentful.New(contentful.Config{
		SpaceID:            cfg.SpaceID,
		AccessToken:        cfg.AccessToken,
		PreviewAccessToken: cfg.PreviewAccessToken,
	})
	site := cmsblog.SiteConfig{
		Name:             cfg.SiteName,
		URL:              cfg.SiteURL,
		Description:      cfg.SiteDescription,
		Addr:             cfg.Addr,
		SessionSecret:    cfg.SessionSecret,
		PreviewSecret:    cfg.PreviewSecret,
		RevalidateSecret: cfg.RevalidateSecret,
		CookieSecure:     cfg.CookieSecure,
		PostCacheTTL:     cfg.CacheTTL,
	}
	return cmsblog.New(site, client, cmsblog.DefaultViews(),
		cmsblog.WithLogger(logger),
		cmsblog.WithStaticDir(cfg.StaticDir))
}
