package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/api"
	"github.com/mesh-intelligence/pantry/internal/logging"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports and record edits over HTTP",
		Long: "Serve exposes the report catalog, filter options and the listing and claim\n" +
			"mutators as a JSON API until interrupted.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.settings.listenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.withStore(func(store types.Store) error {
				logger := logging.WithComponent(a.logger, "api")
				handler := api.NewHandler(store, logger, api.WithVersion(Version))
				return api.Serve(ctx, addr, handler.Router(), logger)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultListenAddr, "listen address (default: listen_addr from config)")
	return cmd
}
