package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// parseID parses a positional record ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, s)
	}
	return id, nil
}

// requireFlags returns a usage error naming the first flag in names that was
// not set on the command line.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			return usagef("required flag --%s not set", name)
		}
	}
	return nil
}

// parseDateFlag parses a date flag value, marking failures as usage errors.
func parseDateFlag(name, value string) (types.Date, error) {
	d, err := types.ParseDate(value)
	if err != nil {
		return types.Date{}, usagef("--%s: %w", name, err)
	}
	return d, nil
}

// oneOf renders values as "a, b or c" for flag help.
func oneOf(values []string) string {
	if len(values) < 2 {
		return strings.Join(values, "")
	}
	return strings.Join(values[:len(values)-1], ", ") + " or " + values[len(values)-1]
}
