package cmd

import (
	"fmt"

	tomlrepo "github.com/bnema/activity-indicator/internal/adapters/repo/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "actind",
		Short:         "Activity indicator (actind): one status line for background work",
		Long:          "actind aggregates language server downloads, pending work, auto-update state and running tasks into a single status line, and runs the action attached to it when clicked.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := v.BindPFlag(tomlrepo.StatePathKey, cmd.Root().PersistentFlags().Lookup("state")); err != nil {
				return fmt.Errorf("bind state flag: %w", err)
			}

			wired, err := wireApp(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.Close()
		},
	}

	rootCmd.PersistentFlags().String("state", "", "State file path (default: ~/.config/actind/state.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newResolveCmd(app),
		newClickCmd(app),
		newProviderCmd(app),
		newProgressCmd(app),
		newUpdaterCmd(app),
		newTaskCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
