package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/korjavin/smartpantry/pkg/pantry"
	"github.com/korjavin/smartpantry/pkg/recipes"
	"github.com/korjavin/smartpantry/pkg/recommend"
	"github.com/korjavin/smartpantry/pkg/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Configure(&bytes.Buffer{}, logger.LevelError)

	kv, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	pantrySvc := pantry.New(pantry.NewBadgerStore(kv))
	catalog := recipes.NewCatalog([]models.Recipe{
		{Name: "Pancakes", Ingredients: "flour: 200 g, egg: 2, milk: 300 ml", Instructions: "Mix. Fry."},
		{Name: "Omelette", Ingredients: "egg: 3, salt"},
	})
	h := NewHandler(pantrySvc, recommend.New(pantrySvc, catalog), catalog)
	return NewRouter(h, nil)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rr := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestGetRecipesSearch(t *testing.T) {
	r := newTestRouter(t)

	rr := do(r, http.MethodGet, "/recipes?search=omel", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Omelette", got[0].Name)

	rr = do(r, http.MethodGet, "/recipes?search=curry", "")
	assert.Equal(t, "[]", rr.Body.String())
}

func TestAddAndListPantry(t *testing.T) {
	r := newTestRouter(t)

	rr := do(r, http.MethodPost, "/users/Mary%20Ann/pantry", `{"name":" Egg ","quantity":6,"unit":"count","expiry_date":"2999-01-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(r, http.MethodGet, "/users/mary_ann/pantry", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var views []models.PantryView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "egg", views[0].Name)
	assert.Equal(t, models.Qty(6), views[0].Quantity)
	assert.NotNil(t, views[0].DaysLeft)
}

func TestAddProductValidation(t *testing.T) {
	r := newTestRouter(t)

	rr := do(r, http.MethodPost, "/users/bob/pantry", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPost, "/users/bob/pantry", `{"name":"milk","expiry_date":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPost, "/users/bob/pantry", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPost, "/users/%20/pantry", `{"name":"milk"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecommendations(t *testing.T) {
	r := newTestRouter(t)

	body := `[
		{"name":"flour","quantity":1,"unit":"kg"},
		{"name":"egg","quantity":4,"unit":"count"},
		{"name":"milk","quantity":1,"unit":"l","expiry_date":"2000-01-01"},
		{"name":"salt","quantity":"a pinch"}
	]`
	rr := do(r, http.MethodPut, "/users/alice/pantry", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(r, http.MethodGet, "/users/alice/recommendations", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Username       string       `json:"username"`
		RemovedExpired int          `json:"removed_expired"`
		Results        []resultView `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 1, got.RemovedExpired)
	require.Len(t, got.Results, 2)

	assert.Equal(t, "Pancakes", got.Results[0].Recipe)
	assert.Equal(t, 66.7, got.Results[0].MatchPercentage)
	assert.Equal(t, "milk", got.Results[0].Missing)

	assert.Equal(t, "Omelette", got.Results[1].Recipe)
	assert.Equal(t, 50.0, got.Results[1].MatchPercentage)
	assert.Equal(t, []string{"salt"}, got.Results[1].MissingIngredients)
}

func TestRecommendationsEmptyPantry(t *testing.T) {
	r := newTestRouter(t)
	rr := do(r, http.MethodGet, "/users/nobody/recommendations", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"missing":"egg, salt"`)
}

func TestImportExportPantry(t *testing.T) {
	r := newTestRouter(t)

	csv := "Product,Category,Quantity,Unit,Expiry Date,Days Left\nRice,Grains,2,kg,,\nbeans,,400,g,,\n"
	req := httptest.NewRequest(http.MethodPost, "/users/carol/pantry/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"imported":2}`, rr.Body.String())

	rr = do(r, http.MethodGet, "/users/carol/pantry/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "Product,Category,Quantity,Unit,Expiry Date,Days Left\nrice,Grains,2,kg,,\nbeans,,400,g,,\n", rr.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/users/carol/pantry/import", strings.NewReader("Name\nx\n"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
