package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// noResults is printed for a report that returned no rows.
const noResults = "No results found"

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printTable writes header and rows aligned in columns, trimming trailing
// padding from each line.
func printTable(w io.Writer, header []string, rows [][]string) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	rules := make([]string, len(header))
	for i, h := range header {
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders one report cell. Floats are rounded half away from
// zero to two places with trailing zeros dropped, so 33.333… prints as 33.33
// and 50.0 as 50.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return decimal.NewFromFloat(x).Round(2).String()
	case int64:
		return decimal.NewFromInt(x).String()
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// printResult writes a report's title and rows, or noResults for an empty
// result.
func printResult(w io.Writer, result types.Result) error {
	if _, err := fmt.Fprintln(w, result.Report.Title()); err != nil {
		return err
	}
	if result.Empty() {
		_, err := fmt.Fprintln(w, noResults)
		return err
	}
	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for j, col := range result.Columns {
			cells[j] = formatValue(row[col])
		}
		rows[i] = cells
	}
	return printTable(w, result.Columns, rows)
}

func listingRows(listings []types.FoodListing) [][]string {
	rows := make([][]string, len(listings))
	for i, l := range listings {
		rows[i] = []string{
			fmt.Sprint(l.FoodID), l.FoodName, fmt.Sprint(l.Quantity), l.ExpiryDate.String(),
			fmt.Sprint(l.ProviderID), l.Location, l.FoodType, l.MealType,
		}
	}
	return rows
}

var listingHeader = []string{"FOOD_ID", "NAME", "QTY", "EXPIRES", "PROVIDER", "LOCATION", "FOOD_TYPE", "MEAL_TYPE"}

func claimRows(claims []types.Claim) [][]string {
	rows := make([][]string, len(claims))
	for i, c := range claims {
		rows[i] = []string{
			fmt.Sprint(c.ClaimID), fmt.Sprint(c.FoodID), fmt.Sprint(c.ReceiverID),
			c.Status, types.FormatTimestamp(c.Timestamp),
		}
	}
	return rows
}

var claimHeader = []string{"CLAIM_ID", "FOOD_ID", "RECEIVER_ID", "STATUS", "TIMESTAMP"}
