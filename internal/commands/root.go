package commands

import (
	"context"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	envFile    string
	verbose    bool
}

// NewRootCommand builds the whispir command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "whispir",
		Short:         "Send messages through the Whispir API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (default: ./whispir.yml)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "env file (default: .env.whispir or .env)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log client requests at debug level")

	cmd.AddCommand(
		newSendCommand(flags),
		newWorkspacesCommand(flags),
		newVersionCommand(),
	)
	return cmd
}

// withApp loads the configuration, starts the client and stops it after fn.
func withApp(ctx context.Context, flags *rootFlags, fn func(*App) error) error {
	cfg, err := LoadAppConfig(flags.configFile, flags.envFile)
	if err != nil {
		return err
	}
	cfg.Verbose = flags.verbose
	app, err := Start(ctx, cfg)
	if err != nil {
		return err
	}
	runErr := fn(app)
	if err := app.Stop(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		return err
	}
	return runErr
}
