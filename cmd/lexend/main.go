// Command lexend serves the onboarding wizards over HTTP and runs them in the
// terminal.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ayflow350/lexend-jobs/internal/config"
	"github.com/Ayflow350/lexend-jobs/internal/logging"
	"github.com/Ayflow350/lexend-jobs/pkg/catalog"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
)

const defaultConfigPath = "lexend.yaml"

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "lexend",
		Short: "Freelancer and company onboarding wizards",
		Long: `lexend collects freelancer profiles and company job posts through
step-by-step onboarding wizards.

Run "lexend serve" for the HTTP API and web pages, or "lexend freelancer" and
"lexend company" to fill a wizard in from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.wizardCmd(flow.KindFreelancer, "Create a freelancer profile in the terminal"),
		a.wizardCmd(flow.KindCompany, "Create a company job post in the terminal"),
		a.openAPICmd(),
		a.initCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// catalog returns the configured reference data, or the embedded catalog.
func (a *app) catalog() (*catalog.Catalog, error) {
	path := strings.TrimSpace(a.cfg.Catalog.Path)
	if path == "" {
		return catalog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	cat, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	a.logger.Debug("catalog loaded", zap.String("path", path))
	return cat, nil
}

func (a *app) flowOptions(cat *catalog.Catalog) []flow.Option {
	return []flow.Option{
		flow.WithLogger(a.logger),
		flow.WithDefaultCategory(cat.DefaultCategory()),
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
