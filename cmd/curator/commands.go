package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/curator/internal/app"
)

type globalFlags struct {
	configPath string
	prefsPath  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	startPage := 1

	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Browse the Harvard Art Museums collection from the terminal",
		Long: `Curator pages through the Harvard Art Museums object API, caching every
page it has seen for the session. Set API_KEY (or api_key in the config file)
before starting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, startPage)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/curator/config.toml)")
	cmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/curator/prefs.toml)")
	cmd.Flags().IntVar(&startPage, "page", 1, "page to open first")

	cmd.AddCommand(newBrowseCmd(flags), newPageCmd(flags))
	return cmd
}

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	startPage := 1
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, startPage)
		},
	}
	cmd.Flags().IntVar(&startPage, "page", 1, "page to open first")
	return cmd
}

func runBrowse(cmd *cobra.Command, flags *globalFlags, startPage int) error {
	if startPage < 1 {
		return fmt.Errorf("--page must be >= 1, got %d", startPage)
	}
	return app.Run(cmd.Context(), app.Options{
		ConfigPath: flags.configPath,
		PrefsPath:  flags.prefsPath,
		StartPage:  startPage,
		Version:    version,
	})
}

func newPageCmd(flags *globalFlags) *cobra.Command {
	format := app.FormatText
	cmd := &cobra.Command{
		Use:   "page <n>",
		Short: "Fetch one page and print it",
		Example: `  curator page 1
  curator page 3 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := strconv.Atoi(args[0])
			if err != nil || page < 1 {
				return fmt.Errorf("page must be a positive integer, got %q", args[0])
			}

			a, err := app.New(app.Options{ConfigPath: flags.configPath, Version: version})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			group, snap, err := a.FetchPage(cmd.Context(), page)
			if err != nil {
				return err
			}
			return app.WritePage(cmd.OutOrStdout(), app.NewPageReport(group, snap), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", app.FormatText, "output format: text, json or yaml")
	return cmd
}
