package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize pantry storage",
		Long:  "Create the configuration and data directories, write a default config.yaml if none exists, and create an empty store.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := writeConfigIfMissing(a.settings.configDir, a.flags.dataDir)
			if err != nil {
				return err
			}
			if wrote {
				a.logger.Info("config written", "dir", a.settings.configDir)
			}

			if err := a.withStore(func(types.Store) error { return nil }); err != nil {
				return fmt.Errorf("initialize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", a.settings.configDir)
			fmt.Fprintf(out, "Data:   %s\n", a.settings.dataDir)
			fmt.Fprintln(out, "Pantry initialized successfully")
			return nil
		},
	}
}
