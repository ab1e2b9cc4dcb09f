package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newClaimCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "claim",
		Aliases: []string{"claims"},
		Short:   "Manage claims",
	}
	cmd.AddCommand(
		newClaimAddCmd(a),
		newClaimListCmd(a),
		newClaimGetCmd(a),
		newClaimStatusCmd(a),
		newClaimDeleteCmd(a),
	)
	return cmd
}

func newClaimAddCmd(a *app) *cobra.Command {
	var (
		c         types.Claim
		timestamp string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a claim",
		Example: "  pantry claim add --id 9 --food 101 --receiver 4 --status Pending",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "id", "food", "receiver"); err != nil {
				return err
			}
			if timestamp == "" {
				c.Timestamp = time.Now().UTC().Truncate(time.Second)
			} else {
				ts, err := types.ParseTimestamp(timestamp)
				if err != nil {
					return usagef("--timestamp: %w", err)
				}
				c.Timestamp = ts
			}

			return a.withStore(func(store types.Store) error {
				if err := store.Claims().Create(c); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created claim %d\n", c.ClaimID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.Int64Var(&c.ClaimID, "id", 0, "Claim_ID (required)")
	f.Int64Var(&c.FoodID, "food", 0, "Food_ID of the claimed listing (required)")
	f.Int64Var(&c.ReceiverID, "receiver", 0, "Receiver_ID (required)")
	f.StringVar(&c.Status, "status", types.StatusPending, oneOf(types.ClaimStatuses))
	f.StringVar(&timestamp, "timestamp", "", "claim time, YYYY-MM-DD HH:MM:SS (default: now)")
	return cmd
}

func newClaimListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all claims",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store types.Store) error {
				claims, err := store.Claims().ReadAll()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), claims)
				}
				return printTable(cmd.OutOrStdout(), claimHeader, claimRows(claims))
			})
		},
	}
}

func newClaimGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <claim-id>",
		Short: "Show one claim",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store types.Store) error {
				c, err := store.Claims().Get(id)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), c)
				}
				return printTable(cmd.OutOrStdout(), claimHeader, claimRows([]types.Claim{c}))
			})
		},
	}
}

func newClaimStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status <claim-id> <status>",
		Short:   "Set a claim's status",
		Example: "  pantry claim status 7 Completed",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := args[1]
			return a.withStore(func(store types.Store) error {
				if err := store.Claims().UpdateStatus(id, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Claim %d is now %s\n", id, status)
				return nil
			})
		},
	}
}

func newClaimDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <claim-id>",
		Short: "Delete a claim",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store types.Store) error {
				if err := store.Claims().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted claim %d\n", id)
				return nil
			})
		},
	}
}
