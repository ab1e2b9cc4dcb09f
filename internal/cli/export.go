package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/source"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every stored row to JSONL files",
		Long:  "Export writes providers.jsonl, receivers.jsonl, food_listings.jsonl and claims.jsonl to dir. The directory can be passed back to rebuild.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			return a.withStore(func(store types.Store) error {
				src, err := store.Snapshot()
				if err != nil {
					return err
				}
				if err := source.WriteJSONLDir(dir, src); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d providers, %d receivers, %d food listings, %d claims to %s\n",
					len(src.Providers), len(src.Receivers), len(src.Listings), len(src.Claims), dir)
				return nil
			})
		},
	}
}
