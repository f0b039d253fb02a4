package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/mev/internal/api"
	"github.com/nikbrunner/mev/internal/config"
	"github.com/nikbrunner/mev/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries what every command needs once flags are parsed.
type cli struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mev [keyword]",
		Short: "Search and evaluate restaurant menus from the terminal",
		Long: `mev - restaurant menu evaluations in the terminal

Without a subcommand mev opens the interactive search. The optional keyword
is the initial search.

TUI Keybindings:
  j/k, gg/G   Move in the focused pane
  tab         Switch between filters and results
  space       Toggle a filter option
  a / r       Apply / reset filters
  /           New keyword search
  [ / ]       History back / forward
  L           Login, sign up, find ID or password
  P           Profile picture
  y           Copy the selected menu
  q           Quit

Configuration:
  ~/.config/mev/config.toml, overridden by MEV_* environment variables`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			return c.runTUI(keyword)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultConfigFilePath(), "config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		c.newSearchCmd(),
		c.newLoginCmd(),
		c.newRestaurantCmd(),
		c.newMenuCmd(),
		c.newEvaluateCmd(),
		c.newDevServerCmd(),
	)
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	c.cfg = cfg
	return nil
}

// stderrLogger is the logger of the non-interactive commands.
func (c *cli) stderrLogger() *log.Logger {
	return logger.New(logger.Config{
		Level:      logger.Level(c.cfg.Log.Level),
		Output:     os.Stderr,
		JSON:       c.cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
}

func (c *cli) client(lg *log.Logger) (*api.Client, error) {
	return api.New(api.Options{
		BaseURL:   c.cfg.API.BaseURL,
		Timeout:   c.cfg.API.Timeout,
		PageCache: c.cfg.Cache.Pages,
		PageTTL:   c.cfg.Cache.TTL,
		DishCache: c.cfg.Cache.Dishes,
		Logger:    lg,
	})
}
