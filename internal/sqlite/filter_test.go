package sqlite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func filters(kv ...string) types.Filters {
	var f types.Filters
	for i := 0; i+1 < len(kv); i += 2 {
		f = f.Add(types.FilterField(kv[i]), kv[i+1])
	}
	return f
}

func TestApplyFilters_NoFiltersUnchanged(t *testing.T) {
	env := catalogEnv{now: fixedNow, windowDays: 2, contactCity: "Chennai"}
	for _, e := range catalog {
		q := e.build(env)
		got, err := applyFilters(q, nil)
		require.NoError(t, err)

		wantSQL, wantArgs := q.build()
		gotSQL, gotArgs := got.build()
		assert.Equal(t, wantSQL, gotSQL, "report %d", e.report.ID)
		assert.Equal(t, wantArgs, gotArgs, "report %d", e.report.ID)
	}
}

func TestApplyFilters_ClaimsBaseSQL(t *testing.T) {
	q := catalogByID[9].build(catalogEnv{})

	got, err := applyFilters(q, filters("city", "Pune"))
	require.NoError(t, err)

	sqlText, args := got.build()
	assert.Equal(t,
		"SELECT f.Food_Name AS Food_Name, COUNT(c.Claim_ID) AS total_claims"+
			" FROM claims c JOIN food_listings f ON f.Food_ID = c.Food_ID"+
			" LEFT JOIN providers p ON p.Provider_ID = f.Provider_ID"+
			" LEFT JOIN receivers r ON r.Receiver_ID = c.Receiver_ID"+
			" WHERE (p.City = ? OR f.Location = ?)"+
			" GROUP BY f.Food_Name ORDER BY total_claims DESC, Food_Name ASC",
		sqlText)
	assert.Equal(t, []any{"Pune", "Pune"}, args)

	assert.Len(t, q.joins, 1, "input query must not be modified")
	assert.Empty(t, q.where)
}

func TestApplyFilters_ValuesAreBound(t *testing.T) {
	evil := "x' OR '1'='1"
	for _, e := range catalog {
		q := e.build(catalogEnv{now: fixedNow})
		got, err := applyFilters(q, filters("city", evil, "provider", evil, "food_type", evil, "meal_type", evil))
		require.NoError(t, err)

		sqlText, args := got.build()
		assert.NotContains(t, sqlText, evil, "report %d", e.report.ID)
		assert.Contains(t, args, evil, "report %d", e.report.ID)
	}
}

func TestApplyFilters_UnknownField(t *testing.T) {
	q := catalogByID[1].build(catalogEnv{})
	_, err := applyFilters(q, types.Filters{{Field: "colour", Value: "red"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestReports_Filtered(t *testing.T) {
	b := setupLoaded(t)

	tests := []struct {
		name    string
		id      int
		filters types.Filters
		want    []types.Row
	}{
		{
			name:    "providers by own city",
			id:      1,
			filters: filters("city", "Mumbai"),
			want:    []types.Row{{"City": "Mumbai", "total_providers": int64(1)}},
		},
		{
			name:    "providers by listing location",
			id:      1,
			filters: filters("city", "Delhi"),
			want:    []types.Row{{"City": "Chennai", "total_providers": int64(1)}},
		},
		{
			name:    "providers by food type",
			id:      1,
			filters: filters("food_type", types.FoodTypeVegan),
			want: []types.Row{
				{"City": "Chennai", "total_providers": int64(1)},
				{"City": "Mumbai", "total_providers": int64(1)},
			},
		},
		{
			name:    "providers by food type and listing location",
			id:      1,
			filters: filters("food_type", types.FoodTypeVegan, "city", "Delhi"),
			want:    []types.Row{{"City": "Chennai", "total_providers": int64(1)}},
		},
		{
			name:    "receivers by provider",
			id:      2,
			filters: filters("provider", "A"),
			want: []types.Row{
				{"City": "Chennai", "total_receivers": int64(1)},
				{"City": "Mumbai", "total_receivers": int64(1)},
			},
		},
		{
			name:    "receivers by own city",
			id:      2,
			filters: filters("city", "Mumbai"),
			want:    []types.Row{{"City": "Mumbai", "total_receivers": int64(1)}},
		},
		{
			name:    "receivers claiming by city",
			id:      5,
			filters: filters("city", "Chennai"),
			want: []types.Row{
				{"Name": "R1", "total_claims": int64(2)},
				{"Name": "R2", "total_claims": int64(1)},
			},
		},
		{
			name:    "total quantity by city",
			id:      6,
			filters: filters("city", "Chennai"),
			want:    []types.Row{{"total_food_available": int64(30)}},
		},
		{
			name:    "food types by city",
			id:      8,
			filters: filters("city", "Chennai"),
			want: []types.Row{
				{"Food_Type": "Non-Vegetarian", "count": int64(1)},
				{"Food_Type": "Vegan", "count": int64(1)},
				{"Food_Type": "Vegetarian", "count": int64(1)},
			},
		},
		{
			name:    "claims per food by food type",
			id:      9,
			filters: filters("food_type", types.FoodTypeVegetarian),
			want:    []types.Row{{"Food_Name": "Rice", "total_claims": int64(2)}},
		},
		{
			name:    "donations by provider name",
			id:      14,
			filters: filters("provider", "B"),
			want:    []types.Row{{"Name": "B", "total_donated": int64(20)}},
		},
		{
			name:    "expiring soon by meal type",
			id:      15,
			filters: filters("meal_type", types.MealTypeLunch),
			want: []types.Row{
				{"Food_Name": "Salad", "Expiry_Date": "2025-01-09", "Quantity": int64(15)},
				{"Food_Name": "Rice", "Expiry_Date": "2025-01-11", "Quantity": int64(10)},
			},
		},
		{
			name:    "all sentinel is ignored",
			id:      3,
			filters: filters("city", types.FilterAll, "meal_type", types.FilterAll),
			want: []types.Row{
				{"Type": "Grocery Store", "total": int64(1)},
				{"Type": "Restaurant", "total": int64(1)},
				{"Type": "Supermarket", "total": int64(1)},
			},
		},
		{
			name:    "unknown value yields no rows",
			id:      8,
			filters: filters("city", "Atlantis"),
			want:    []types.Row{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := b.Reports().Execute(tt.id, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Rows)
		})
	}
}

// TestApplyFilters_Narrows checks that filtering only ever removes groups (or
// rows) from a report. Row limits are lifted first: a top-N report can
// legitimately surface a group under a filter that the unfiltered top-N cut.
// The single-row total is skipped since its value, not its presence, changes.
func TestApplyFilters_Narrows(t *testing.T) {
	b := setupLoaded(t)
	env := catalogEnv{now: fixedNow, windowDays: 2, contactCity: "Chennai"}

	filterSets := []types.Filters{
		filters("city", "Chennai"),
		filters("city", "Delhi"),
		filters("provider", "A"),
		filters("food_type", types.FoodTypeVegan),
		filters("meal_type", types.MealTypeLunch, "city", "Chennai"),
		filters("provider", "B", "food_type", types.FoodTypeVegan),
		filters("city", "Nowhere"),
	}

	keys := func(t *testing.T, q query) map[any]bool {
		t.Helper()
		sqlText, args := q.build()
		result, err := runQuery(b, sqlText, args)
		require.NoError(t, err)
		out := make(map[any]bool, len(result.Rows))
		for _, row := range result.Rows {
			out[row[result.Columns[0]]] = true
		}
		return out
	}

	for _, e := range catalog {
		if e.report.ID == 6 {
			continue
		}
		base := e.build(env)
		base.limit = 0
		all := keys(t, base)

		for i, fs := range filterSets {
			t.Run(fmt.Sprintf("report %d set %d", e.report.ID, i), func(t *testing.T) {
				filtered, err := applyFilters(base, fs)
				require.NoError(t, err)
				for k := range keys(t, filtered) {
					assert.True(t, all[k], "filtered key %v missing from unfiltered result", k)
				}
			})
		}
	}
}
