package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spachava753/contactsbridge/logger"
	"github.com/spachava753/contactsbridge/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the channel methods over HTTP",
		Long: `Opens the contacts store and serves every channel method as
POST /v1/channel/{method} until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.New(opts.isDev)
			defer log.Sync()

			s, err := opts.open(ctx, log)
			if err != nil {
				return err
			}
			defer s.Close()

			return server.Start(ctx, s.cfg.Server, s.dispatcher, log)
		},
	}
}
