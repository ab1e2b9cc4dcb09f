package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/internal/source"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newRebuildCmd(a *app) *cobra.Command {
	var sourceDir, format string

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Replace the store contents with the record sources",
		Long: "Rebuild reads providers, receivers, food listings and claims from the\n" +
			"source directory and replaces every stored row with them. On a schema\n" +
			"error the previous contents are kept.\n\n" +
			"The source directory holds either the CSV files (providers_data.csv,\n" +
			"receivers_data.csv, food_listings_data.csv, claims_data.csv) or the JSONL\n" +
			"files written by export.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := source.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			dir, err := paths.ResolveSourceDir(sourceDir)
			if err != nil {
				return fmt.Errorf("resolve source dir: %w", err)
			}

			src, err := source.Load(dir, f)
			if err != nil {
				return err
			}

			return a.withStore(func(store types.Store) error {
				info, err := store.Rebuild(src)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), info)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Rebuilt from %s\n", dir)
				fmt.Fprintf(out, "Rebuild ID: %s\n", info.RebuildID)
				return printTable(out, []string{"TABLE", "ROWS"}, [][]string{
					{"providers", fmt.Sprint(info.Providers)},
					{"receivers", fmt.Sprint(info.Receivers)},
					{"food_listings", fmt.Sprint(info.Listings)},
					{"claims", fmt.Sprint(info.Claims)},
				})
			})
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "", "source directory (default: $PANTRY_SOURCE_DIR or $(CWD)/data)")
	cmd.Flags().StringVar(&format, "format", "", "source format: csv or jsonl (default: detect)")
	return cmd
}
