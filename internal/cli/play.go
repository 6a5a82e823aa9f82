package cli

import (
	"github.com/spf13/cobra"

	"github.com/fadedpez/tong777/internal/console"
	"github.com/fadedpez/tong777/internal/factory"
)

func newPlayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Log in or register and play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.New(e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			c := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			return console.NewApp(c, app.Service, e.logger.Named("console")).Run(cmd.Context())
		},
	}
}
