package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newListingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "listing",
		Aliases: []string{"listings"},
		Short:   "Manage food listings",
	}
	cmd.AddCommand(
		newListingAddCmd(a),
		newListingListCmd(a),
		newListingGetCmd(a),
		newListingUpdateCmd(a),
		newListingDeleteCmd(a),
	)
	return cmd
}

func newListingAddCmd(a *app) *cobra.Command {
	var (
		l      types.FoodListing
		expiry string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a food listing",
		Example: "  pantry listing add --id 101 --name Rice --quantity 30 --expiry 2025-03-20 \\\n" +
			"    --provider 1 --provider-type Restaurant --location Chennai \\\n" +
			"    --food-type Vegetarian --meal-type Lunch",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "id", "name", "quantity", "expiry", "provider", "food-type", "meal-type"); err != nil {
				return err
			}
			var err error
			if l.ExpiryDate, err = parseDateFlag("expiry", expiry); err != nil {
				return err
			}

			return a.withStore(func(store types.Store) error {
				if err := store.Listings().Create(l); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), l)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created food listing %d\n", l.FoodID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.Int64Var(&l.FoodID, "id", 0, "Food_ID (required)")
	f.StringVar(&l.FoodName, "name", "", "food name (required)")
	f.IntVar(&l.Quantity, "quantity", 0, "quantity (required)")
	f.StringVar(&expiry, "expiry", "", "expiry date, YYYY-MM-DD (required)")
	f.Int64Var(&l.ProviderID, "provider", 0, "Provider_ID (required)")
	f.StringVar(&l.ProviderType, "provider-type", "", "provider type")
	f.StringVar(&l.Location, "location", "", "listing city")
	f.StringVar(&l.FoodType, "food-type", "", oneOf(types.FoodTypes)+" (required)")
	f.StringVar(&l.MealType, "meal-type", "", oneOf(types.MealTypes)+" (required)")
	return cmd
}

func newListingListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all food listings",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store types.Store) error {
				listings, err := store.Listings().ReadAll()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), listings)
				}
				return printTable(cmd.OutOrStdout(), listingHeader, listingRows(listings))
			})
		},
	}
}

func newListingGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <food-id>",
		Short: "Show one food listing",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store types.Store) error {
				l, err := store.Listings().Get(id)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), l)
				}
				return printTable(cmd.OutOrStdout(), listingHeader, listingRows([]types.FoodListing{l}))
			})
		},
	}
}

func newListingUpdateCmd(a *app) *cobra.Command {
	var (
		name     string
		quantity int
		expiry   string
	)

	cmd := &cobra.Command{
		Use:   "update <food-id>",
		Short: "Change a listing's name, quantity or expiry date",
		Long:  "Update changes the given fields of a food listing. Fields whose flags are not set keep their current values.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if !f.Changed("name") && !f.Changed("quantity") && !f.Changed("expiry") {
				return usagef("nothing to update: set --name, --quantity or --expiry")
			}
			var date types.Date
			if f.Changed("expiry") {
				if date, err = parseDateFlag("expiry", expiry); err != nil {
					return err
				}
			}

			return a.withStore(func(store types.Store) error {
				table := store.Listings()
				current, err := table.Get(id)
				if err != nil {
					return err
				}
				update := types.ListingUpdate{
					FoodName:   current.FoodName,
					Quantity:   current.Quantity,
					ExpiryDate: current.ExpiryDate,
				}
				if f.Changed("name") {
					update.FoodName = name
				}
				if f.Changed("quantity") {
					update.Quantity = quantity
				}
				if f.Changed("expiry") {
					update.ExpiryDate = date
				}
				if err := table.Update(id, update); err != nil {
					return err
				}
				if a.flags.jsonMode {
					update.Apply(&current)
					return printJSON(cmd.OutOrStdout(), current)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated food listing %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new food name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "new quantity")
	cmd.Flags().StringVar(&expiry, "expiry", "", "new expiry date, YYYY-MM-DD")
	return cmd
}

func newListingDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <food-id>",
		Short: "Delete a food listing; its claims are kept",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store types.Store) error {
				if err := store.Listings().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted food listing %d\n", id)
				return nil
			})
		},
	}
}
