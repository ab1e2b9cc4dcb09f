package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// applyFilters returns q restricted by the conjunction of filters. Values are
// always bound as arguments.
//
// Where a filter lands depends on the query's base table:
//   - claims: the graph is widened to claims ⋈ food_listings ⋈ providers ⋈
//     receivers (missing tables are left-joined on their primary keys, which
//     never multiplies rows) and filters attach to the joined columns.
//   - food_listings: providers is left-joined the same way.
//   - providers and receivers: filters on their own columns attach directly;
//     listing-level filters become one EXISTS over the rows they own.
//
// City matches a provider's City or a listing's Location; on a receivers
// base it matches the receiver's City. With no filters q is returned as is.
func applyFilters(q query, filters types.Filters) (query, error) {
	if len(filters) == 0 {
		return q, nil
	}
	for _, f := range filters {
		switch f.Field {
		case types.FilterCity, types.FilterProviderName, types.FilterFoodType, types.FilterMealType:
		default:
			return query{}, fmt.Errorf("%w: unknown field %q", types.ErrInvalidFilter, f.Field)
		}
	}

	out := q.clone()
	switch q.from.name {
	case tableClaims:
		c := out.from.alias
		f := out.ensureJoin(tableListings, refListings.alias, fmt.Sprintf("%s.Food_ID = %s.Food_ID", refListings.alias, c))
		p := out.ensureJoin(tableProviders, refProviders.alias, fmt.Sprintf("%s.Provider_ID = %s.Provider_ID", refProviders.alias, f))
		out.ensureJoin(tableReceivers, refReceivers.alias, fmt.Sprintf("%s.Receiver_ID = %s.Receiver_ID", refReceivers.alias, c))
		out.where = append(out.where, listingPredicates(filters, p, f)...)

	case tableListings:
		f := out.from.alias
		p := out.ensureJoin(tableProviders, refProviders.alias, fmt.Sprintf("%s.Provider_ID = %s.Provider_ID", refProviders.alias, f))
		out.where = append(out.where, listingPredicates(filters, p, f)...)

	case tableProviders:
		out.where = append(out.where, providerPredicates(filters, out.from.alias)...)

	case tableReceivers:
		out.where = append(out.where, receiverPredicates(filters, out.from.alias)...)

	default:
		return query{}, fmt.Errorf("%w: no filter rule for table %s", types.ErrInvalidFilter, q.from.name)
	}
	return out, nil
}

// listingPredicates renders filters over a graph where both the provider
// (alias p) and the listing (alias f) columns are in scope.
func listingPredicates(filters types.Filters, p, f string) []predicate {
	preds := make([]predicate, 0, len(filters))
	for _, flt := range filters {
		switch flt.Field {
		case types.FilterCity:
			preds = append(preds, predicate{
				fmt.Sprintf("(%s.City = ? OR %s.Location = ?)", p, f),
				[]any{flt.Value, flt.Value},
			})
		case types.FilterProviderName:
			preds = append(preds, predicate{p + ".Name = ?", []any{flt.Value}})
		case types.FilterFoodType:
			preds = append(preds, predicate{f + ".Food_Type = ?", []any{flt.Value}})
		case types.FilterMealType:
			preds = append(preds, predicate{f + ".Meal_Type = ?", []any{flt.Value}})
		}
	}
	return preds
}

// providerPredicates renders filters for a providers-based query. A provider
// matches listing-level filters when it owns at least one listing matching
// all of them; with only a City filter, a provider matches by its own City or
// by the Location of any of its listings.
func providerPredicates(filters types.Filters, p string) []predicate {
	const fx = "fx"
	var direct, nested []predicate
	var city *types.Filter

	for i, flt := range filters {
		switch flt.Field {
		case types.FilterCity:
			city = &filters[i]
		case types.FilterProviderName:
			direct = append(direct, predicate{p + ".Name = ?", []any{flt.Value}})
		case types.FilterFoodType:
			nested = append(nested, predicate{fx + ".Food_Type = ?", []any{flt.Value}})
		case types.FilterMealType:
			nested = append(nested, predicate{fx + ".Meal_Type = ?", []any{flt.Value}})
		}
	}

	owned := fmt.Sprintf("SELECT 1 FROM food_listings %s WHERE %s.Provider_ID = %s.Provider_ID", fx, fx, p)
	if city != nil {
		if len(nested) == 0 {
			direct = append(direct, predicate{
				fmt.Sprintf("(%s.City = ? OR EXISTS (%s AND %s.Location = ?))", p, owned, fx),
				[]any{city.Value, city.Value},
			})
		} else {
			nested = append(nested, predicate{
				fmt.Sprintf("(%s.City = ? OR %s.Location = ?)", p, fx),
				[]any{city.Value, city.Value},
			})
		}
	}
	if len(nested) > 0 {
		direct = append(direct, existsPredicate(owned, nested))
	}
	return direct
}

// receiverPredicates renders filters for a receivers-based query. City
// matches the receiver's own City; the other fields match when the receiver
// has at least one claim whose listing and provider satisfy all of them.
func receiverPredicates(filters types.Filters, r string) []predicate {
	var direct, nested []predicate
	for _, flt := range filters {
		switch flt.Field {
		case types.FilterCity:
			direct = append(direct, predicate{r + ".City = ?", []any{flt.Value}})
		case types.FilterProviderName:
			nested = append(nested, predicate{"px.Name = ?", []any{flt.Value}})
		case types.FilterFoodType:
			nested = append(nested, predicate{"fx.Food_Type = ?", []any{flt.Value}})
		case types.FilterMealType:
			nested = append(nested, predicate{"fx.Meal_Type = ?", []any{flt.Value}})
		}
	}
	if len(nested) > 0 {
		claimed := "SELECT 1 FROM claims cx" +
			" JOIN food_listings fx ON fx.Food_ID = cx.Food_ID" +
			" LEFT JOIN providers px ON px.Provider_ID = fx.Provider_ID" +
			fmt.Sprintf(" WHERE cx.Receiver_ID = %s.Receiver_ID", r)
		direct = append(direct, existsPredicate(claimed, nested))
	}
	return direct
}

// existsPredicate wraps "sub AND nested..." in EXISTS, concatenating args in
// placeholder order.
func existsPredicate(sub string, nested []predicate) predicate {
	terms := make([]string, len(nested))
	var args []any
	for i, n := range nested {
		terms[i] = n.sql
		args = append(args, n.args...)
	}
	return predicate{
		fmt.Sprintf("EXISTS (%s AND %s)", sub, strings.Join(terms, " AND ")),
		args,
	}
}
