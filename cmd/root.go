package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/internal/config"
	"github.com/cryptoblog/blogctl/internal/logging"
	"github.com/cryptoblog/blogctl/internal/session"
	"github.com/cryptoblog/blogctl/pkg/output"
)

var (
	cfgFile string
	cfg     *config.Config
	store   session.Store
	log     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "CryptoBlog CLI",
	Long: `blogctl is the command-line client for the CryptoBlog API.

Sign in, browse and search posts, manage categories, comments and
subscribers, and run the admin dashboard from your terminal.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.blogctl/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (default from config/env)")
	rootCmd.PersistentFlags().String("output", "table", "output format: table, json")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = &config.Config{}
	}

	if cfg.Session.Dir == "" {
		if dir, err := config.DefaultDir(); err == nil {
			cfg.Session.Dir = dir
		} else {
			cfg.Session.Dir = ".blogctl"
		}
	}
	if store == nil {
		store = session.NewFileStore(cfg.Session.Dir)
	}

	noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
	output.NoColor(noColor || cfg.Output.NoColor)

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if verbose {
		log = logging.New(logging.ParseLevel("debug"), cfg.Logging.Format)
	} else if cfg.Logging.Level == "debug" {
		log = logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	} else {
		log = logging.Discard()
	}
}

// newClient builds the API client used by every command.
func newClient(cmd *cobra.Command) *api.Client {
	baseURL := cfg.API.BaseURL
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		baseURL = v
	}

	opts := []api.Option{
		api.WithLogger(log),
		api.WithUnauthorizedHook(func() {
			output.Warn("Session expired. Run 'blogctl login' to sign in again.")
		}),
	}
	if cfg.API.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.API.Timeout))
	}

	return api.New(baseURL, store, opts...)
}

func outputFormat(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("output"); v != "" && cmd.Flags().Changed("output") {
		return v
	}
	if cfg.Output.Format != "" {
		return cfg.Output.Format
	}
	return "table"
}

// requireAuth fails fast when there is no live session, before any
// request is sent.
func requireAuth() error {
	if !store.IsAuthenticated() {
		return fmt.Errorf("not logged in: run 'blogctl login' first")
	}
	return nil
}
