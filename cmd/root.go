package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spachava753/contactsbridge/android/contacts"
	"github.com/spachava753/contactsbridge/android/provider"
	"github.com/spachava753/contactsbridge/channel"
	"github.com/spachava753/contactsbridge/config"
	"github.com/spachava753/contactsbridge/logger"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile string
	isDev   bool
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	cobra.CheckErr(NewRootCmd().Execute())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "contactsbridge",
		Short: "Query and edit an address book through the contacts channel methods",
		Long: `contactsbridge stores contacts the way the Android contacts provider does
and answers the contacts plugin channel methods over HTTP or from the command line.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (defaults and CONTACTSBRIDGE_* env vars apply)")
	cmd.PersistentFlags().BoolVarP(&opts.isDev, "dev", "", false, "run in development mode")

	cmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newAvatarCmd(opts),
	)
	return cmd
}

// session is an opened store with its dispatcher.
type session struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	store      *provider.Provider
	dispatcher *channel.Dispatcher
}

func (o *rootOptions) open(ctx context.Context, log *zap.SugaredLogger) (*session, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
		if o.isDev {
			log = logger.New(true)
		}
	}

	var providerOpts []provider.Option
	providerOpts = append(providerOpts, provider.WithLogger(log))
	if cfg.Database.ReadOnly {
		providerOpts = append(providerOpts, provider.WithReadOnly())
	}
	store, err := provider.Open(ctx, cfg.Database.Path, providerOpts...)
	if err != nil {
		return nil, err
	}

	d := channel.New(store,
		channel.WithLogger(log),
		channel.WithWorkers(cfg.Pool.Workers),
		channel.WithQueueSize(cfg.Pool.QueueSize),
		channel.WithLocalizer(contacts.NewCatalogLocalizer(cfg.Labels.Language())),
		channel.WithLocalizedLabels(cfg.Labels.Localized),
	)
	return &session{cfg: cfg, log: log, store: store, dispatcher: d}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

func (s *session) invoke(ctx context.Context, method string, args map[string]any) (any, error) {
	return s.dispatcher.Invoke(ctx, channel.MethodCall{Method: method, Arguments: args})
}

func formattedError(format string, a ...interface{}) error {
	return errors.Errorf(red(format), a...)
}

func printDone(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", green("done:"), fmt.Sprintf(format, a...))
}
