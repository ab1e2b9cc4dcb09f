package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Compile-time interface check.
var _ types.Reports = (*reports)(nil)

// reports runs the query catalog against the backend.
type reports struct {
	backend *Backend
}

// Catalog lists every report in id order.
func (rp *reports) Catalog() []types.Report {
	out := make([]types.Report, len(catalog))
	for i, e := range catalog {
		out[i] = e.report
	}
	return out
}

// Lookup resolves an id, a label or a numbered title.
func (rp *reports) Lookup(key string) (types.Report, error) {
	key = strings.TrimSpace(key)
	if id, err := strconv.Atoi(key); err == nil {
		if e, ok := catalogByID[id]; ok {
			return e.report, nil
		}
		return types.Report{}, fmt.Errorf("%w: %d", types.ErrQueryNotFound, id)
	}
	for _, e := range catalog {
		if strings.EqualFold(key, e.report.Title()) || strings.EqualFold(key, e.report.Label) {
			return e.report, nil
		}
	}
	return types.Report{}, fmt.Errorf("%w: %q", types.ErrQueryNotFound, key)
}

// Execute builds report id for the current clock and configuration, applies
// filters and runs it.
func (rp *reports) Execute(id int, filters types.Filters) (types.Result, error) {
	entry, ok := catalogByID[id]
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %d", types.ErrQueryNotFound, id)
	}

	b := rp.backend
	if err := b.rlock(); err != nil {
		return types.Result{}, err
	}
	defer b.mu.RUnlock()

	env := catalogEnv{
		now:         b.now(),
		windowDays:  b.config.GetExpiryWindowDays(),
		contactCity: b.config.GetContactCity(),
	}
	q, err := applyFilters(entry.build(env), filters)
	if err != nil {
		return types.Result{}, err
	}

	sqlText, args := q.build()
	b.logger.Debug("executing report", "id", id, "filters", len(filters), "sql", sqlText)

	result, err := runQuery(b, sqlText, args)
	if err != nil {
		return types.Result{}, fmt.Errorf("%w: %s: %w", types.ErrQueryExecution, entry.report.Title(), err)
	}
	result.Report = entry.report
	return result, nil
}

// Options lists the distinct values of each filterable field, sorted. Cities
// are drawn from both providers.City and food_listings.Location.
func (rp *reports) Options() (types.FilterOptions, error) {
	b := rp.backend
	if err := b.rlock(); err != nil {
		return types.FilterOptions{}, err
	}
	defer b.mu.RUnlock()

	var opts types.FilterOptions
	lists := []struct {
		dst   *[]string
		query string
	}{
		{&opts.Cities, "SELECT City FROM providers WHERE City IS NOT NULL AND City <> ''" +
			" UNION SELECT Location FROM food_listings WHERE Location IS NOT NULL AND Location <> '' ORDER BY 1"},
		{&opts.ProviderNames, "SELECT DISTINCT Name FROM providers WHERE Name <> '' ORDER BY 1"},
		{&opts.FoodTypes, "SELECT DISTINCT Food_Type FROM food_listings WHERE Food_Type IS NOT NULL AND Food_Type <> '' ORDER BY 1"},
		{&opts.MealTypes, "SELECT DISTINCT Meal_Type FROM food_listings WHERE Meal_Type IS NOT NULL AND Meal_Type <> '' ORDER BY 1"},
	}
	for _, l := range lists {
		values, err := collect(b.db, l.query, func(row rowScanner) (string, error) {
			var s string
			err := row.Scan(&s)
			return s, err
		})
		if err != nil {
			return types.FilterOptions{}, fmt.Errorf("reading filter options: %w", err)
		}
		*l.dst = values
	}
	return opts, nil
}

// runQuery executes sqlText and returns its rows keyed by column name.
// BLOB values are returned as strings.
func runQuery(b *Backend, sqlText string, args []any) (types.Result, error) {
	rows, err := b.db.Query(sqlText, args...)
	if err != nil {
		return types.Result{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return types.Result{}, err
	}

	result := types.Result{Columns: cols, Rows: []types.Row{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return types.Result{}, err
		}
		row := make(types.Row, len(cols))
		for i, col := range cols {
			if raw, ok := values[i].([]byte); ok {
				row[col] = string(raw)
				continue
			}
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return types.Result{}, err
	}
	return result, nil
}
