package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/internal/logging"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// setupRouter returns a router over a freshly rebuilt store.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	store := sqlite.NewBackend(sqlite.WithClock(clock), sqlite.WithLogger(logging.Discard()))
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { store.Detach() })

	_, err := store.Rebuild(types.Sources{
		Providers: []types.Provider{
			{ProviderID: 1, Name: "A", Type: "Restaurant", City: "Chennai", Contact: "111"},
			{ProviderID: 2, Name: "B", Type: "Grocery Store", City: "Mumbai", Contact: "222"},
		},
		Receivers: []types.Receiver{{ReceiverID: 1, Name: "R1", Type: "NGO", City: "Chennai"}},
		Listings: []types.FoodListing{
			{FoodID: 1, FoodName: "Rice", Quantity: 30, ExpiryDate: types.NewDate(2025, 1, 11), ProviderID: 1,
				Location: "Chennai", FoodType: types.FoodTypeVegetarian, MealType: types.MealTypeLunch},
			{FoodID: 2, FoodName: "Bread", Quantity: 20, ExpiryDate: types.NewDate(2025, 1, 20), ProviderID: 2,
				Location: "Mumbai", FoodType: types.FoodTypeVegan, MealType: types.MealTypeBreakfast},
		},
		Claims: []types.Claim{
			{ClaimID: 1, FoodID: 1, ReceiverID: 1, Status: types.StatusPending, Timestamp: fixedNow},
		},
	})
	require.NoError(t, err)

	return NewHandler(store, logging.Discard(), WithClock(clock), WithVersion("test")).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[healthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.NotEmpty(t, resp.LastRebuild)
}

func TestListReports(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reports := decode[[]types.Report](t, w)
	require.Len(t, reports, 15)
	assert.Equal(t, "Total quantity of food available", reports[5].Label)
}

func TestRunReport(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
		rows   []map[string]any
	}{
		{
			name:   "total quantity",
			path:   "/api/reports/6",
			status: http.StatusOK,
			rows:   []map[string]any{{"total_food_available": float64(50)}},
		},
		{
			name:   "filtered by city",
			path:   "/api/reports/6?city=Mumbai",
			status: http.StatusOK,
			rows:   []map[string]any{{"total_food_available": float64(20)}},
		},
		{
			name:   "All means unfiltered",
			path:   "/api/reports/6?city=All&food_type=",
			status: http.StatusOK,
			rows:   []map[string]any{{"total_food_available": float64(50)}},
		},
		{
			name:   "expiring soon",
			path:   "/api/reports/15",
			status: http.StatusOK,
			rows:   []map[string]any{{"Food_Name": "Rice", "Expiry_Date": "2025-01-11", "Quantity": float64(30)}},
		},
		{
			name:   "by title",
			path:   "/api/reports/Most%20common%20food%20types?meal_type=Lunch",
			status: http.StatusOK,
			rows:   []map[string]any{{"Food_Type": "Vegetarian", "count": float64(1)}},
		},
		{
			name:   "no rows is not an error",
			path:   "/api/reports/10",
			status: http.StatusOK,
			rows:   []map[string]any{},
		},
		{name: "unknown id", path: "/api/reports/99", status: http.StatusNotFound},
		{name: "unknown title", path: "/api/reports/nothing", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, decode[errorResponse](t, w).Error)
				return
			}
			var result struct {
				Rows []map[string]any `json:"rows"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
			assert.Equal(t, tt.rows, result.Rows)
		})
	}
}

func TestOptions(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opts := decode[types.FilterOptions](t, w)
	assert.Equal(t, []string{"Chennai", "Mumbai"}, opts.Cities)
	assert.Equal(t, []string{"A", "B"}, opts.ProviderNames)
}

func TestListingLifecycle(t *testing.T) {
	h := setupRouter(t)

	listing := types.FoodListing{
		FoodID: 5, FoodName: "Curry", Quantity: 8, ExpiryDate: types.NewDate(2025, 1, 12), ProviderID: 2,
		Location: "Mumbai", FoodType: types.FoodTypeVegan, MealType: types.MealTypeDinner,
	}

	w := do(t, h, http.MethodPost, "/api/listings", listing)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/listings", listing)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPut, "/api/listings/5", types.ListingUpdate{
		FoodName: "Green Curry", Quantity: 4, ExpiryDate: types.NewDate(2025, 1, 13),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[types.FoodListing](t, w)
	assert.Equal(t, "Green Curry", got.FoodName)
	assert.Equal(t, 4, got.Quantity)

	w = do(t, h, http.MethodGet, "/api/listings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.FoodListing](t, w), 3)

	w = do(t, h, http.MethodDelete, "/api/listings/5", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/listings/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingErrors(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bad id", http.MethodGet, "/api/listings/abc", nil, http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/api/listings/0", nil, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/listings", map[string]any{"Colour": "red"}, http.StatusBadRequest},
		{"unknown provider", http.MethodPost, "/api/listings", types.FoodListing{
			FoodID: 9, FoodName: "X", ExpiryDate: types.NewDate(2025, 1, 1), ProviderID: 77,
			FoodType: types.FoodTypeVegan, MealType: types.MealTypeLunch,
		}, http.StatusBadRequest},
		{"update missing", http.MethodPut, "/api/listings/99", types.ListingUpdate{
			FoodName: "X", Quantity: 1, ExpiryDate: types.NewDate(2025, 1, 1),
		}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestClaimLifecycle(t *testing.T) {
	h := setupRouter(t)

	w := do(t, h, http.MethodPost, "/api/claims", map[string]any{
		"Claim_ID": 7, "Food_ID": 2, "Receiver_ID": 1, "Status": types.StatusCompleted,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[types.Claim](t, w)
	assert.Equal(t, fixedNow, created.Timestamp)

	w = do(t, h, http.MethodGet, "/api/reports/10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Name":"B"`)

	w = do(t, h, http.MethodPut, "/api/claims/7/status", statusUpdate{Status: types.StatusCancelled})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, types.StatusCancelled, decode[types.Claim](t, w).Status)

	w = do(t, h, http.MethodPut, "/api/claims/7/status", statusUpdate{Status: "Done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/claims/70/status", statusUpdate{Status: types.StatusPending})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/claims", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.Claim](t, w), 2)

	w = do(t, h, http.MethodDelete, "/api/claims/7", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/claims/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{types.ErrNotFound, http.StatusNotFound},
		{types.ErrQueryNotFound, http.StatusNotFound},
		{types.ErrDuplicateKey, http.StatusConflict},
		{types.ErrInvalidStatus, http.StatusBadRequest},
		{types.ErrInvalidFilter, http.StatusBadRequest},
		{types.ErrSchema, http.StatusBadRequest},
		{types.ErrStoreDetached, http.StatusServiceUnavailable},
		{types.ErrQueryExecution, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestDetachedStore(t *testing.T) {
	store := sqlite.NewBackend()
	h := NewHandler(store, logging.Discard()).Router()

	w := do(t, h, http.MethodGet, "/api/listings", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
