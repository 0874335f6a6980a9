package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ayflow350/lexend-jobs/internal/apidoc"
	"github.com/Ayflow350/lexend-jobs/internal/config"
	"github.com/Ayflow350/lexend-jobs/pkg/flow"
	"github.com/Ayflow350/lexend-jobs/pkg/renderers/tui"
)

func (a *app) wizardCmd(kind flow.Kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			wiz, err := flow.New(kind, a.flowOptions(cat)...)
			if err != nil {
				return err
			}
			runner, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithCatalog(cat),
				tui.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if _, err := runner.Run(cmd.Context(), wiz); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Aborted, nothing was submitted.")
					return nil
				}
				return err
			}
			return nil
		},
	}
}

func (a *app) openAPICmd() *cobra.Command {
	var (
		output    string
		serverURL string
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the wizard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []apidoc.Option
			if serverURL != "" {
				opts = append(opts, apidoc.WithServerURL(serverURL))
			}
			doc, err := apidoc.Build(opts...)
			if err != nil {
				return err
			}
			data, err := apidoc.JSON(doc)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI document written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "server URL advertised in the document")
	return cmd
}

func (a *app) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", a.configPath)
			}
			if err := config.Default().Save(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
