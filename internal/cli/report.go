package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "List and run the fixed report catalog",
	}
	cmd.AddCommand(newReportListCmd(a), newReportRunCmd(a))
	return cmd
}

func newReportListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store types.Store) error {
				catalog := store.Reports().Catalog()
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), catalog)
				}
				rows := make([][]string, len(catalog))
				for i, r := range catalog {
					rows[i] = []string{fmt.Sprint(r.ID), r.Label}
				}
				return printTable(cmd.OutOrStdout(), []string{"ID", "REPORT"}, rows)
			})
		},
	}
}

func newReportRunCmd(a *app) *cobra.Command {
	values := make(map[types.FilterField]*string, len(types.FilterFields))

	cmd := &cobra.Command{
		Use:   "run <id|title>",
		Short: "Run one report, optionally filtered",
		Long: "Run executes a report by number (\"6\") or title. Filters restrict the\n" +
			"report to rows matching every given value; \"All\" means no filter.",
		Example: "  pantry report run 1\n" +
			"  pantry report run 8 --city Chennai --meal-type Lunch",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filters types.Filters
			for _, field := range types.FilterFields {
				filters = filters.Add(field, *values[field])
			}

			return a.withStore(func(store types.Store) error {
				reports := store.Reports()
				report, err := reports.Lookup(args[0])
				if err != nil {
					return err
				}
				result, err := reports.Execute(report.ID, filters)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), result)
				}
				return printResult(cmd.OutOrStdout(), result)
			})
		},
	}

	flagNames := map[types.FilterField]string{
		types.FilterCity:         "city",
		types.FilterProviderName: "provider",
		types.FilterFoodType:     "food-type",
		types.FilterMealType:     "meal-type",
	}
	for _, field := range types.FilterFields {
		values[field] = new(string)
		cmd.Flags().StringVar(values[field], flagNames[field], "", fmt.Sprintf("filter on %s", field))
	}
	return cmd
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the values each report filter can take",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store types.Store) error {
				opts, err := store.Reports().Options()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), opts)
				}
				out := cmd.OutOrStdout()
				for _, group := range []struct {
					name   string
					values []string
				}{
					{"Cities", opts.Cities},
					{"Providers", opts.ProviderNames},
					{"Food types", opts.FoodTypes},
					{"Meal types", opts.MealTypes},
				} {
					fmt.Fprintf(out, "%s:\n", group.name)
					for _, v := range group.values {
						fmt.Fprintf(out, "  %s\n", v)
					}
				}
				return nil
			})
		},
	}
}
