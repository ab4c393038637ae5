package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipes-service/config"
	"github.com/pageza/recipes-service/internal/middleware"
	"github.com/pageza/recipes-service/internal/router"
	"github.com/pageza/recipes-service/internal/testhelpers"
	"github.com/pageza/recipes-service/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestClient(t *testing.T, mutate func(*config.Config)) *testClient {
	cfg := config.Default()
	cfg.AuthPassword = "integration-pass"
	cfg.JWTSecret = "integration-secret"
	if mutate != nil {
		mutate(cfg)
	}

	var rdb redis.Cmdable
	if cfg.RateLimitEnabled {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		rdb = client
	}

	handler, err := router.SetupRouter(router.Dependencies{
		Config: cfg,
		DB:     testhelpers.NewSQLiteDB(t),
		Redis:  rdb,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	return &testClient{t: t, handler: handler}
}

func (c *testClient) login(username, password string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	req.SetBasicAuth(username, password)
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		var tok types.TokenResponse
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &tok))
		c.token = tok.Token
	}
	return w.Code
}

func (c *testClient) do(method, path string, body any, out any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	if out != nil && w.Code < http.StatusBadRequest {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestRecipeLifecycle(t *testing.T) {
	c := newTestClient(t, nil)
	require.Equal(t, http.StatusOK, c.login(config.DefaultAuthUsername, "integration-pass"))

	pancakes := types.RecipeRequest{
		Name:         "Pancakes",
		Vegetarian:   true,
		Servings:     4,
		Ingredients:  []string{"Flour", "Milk", "Eggs"},
		Instructions: "Mix and fry",
	}

	var created types.RecipeResponse
	w := c.do(http.MethodPost, "/recipe", pancakes, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var fetched types.RecipeResponse
	w = c.do(http.MethodGet, "/recipe/"+strconv.FormatInt(created.ID, 10), nil, &fetched)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, fetched)
	assert.Equal(t, []string{"Flour", "Milk", "Eggs"}, fetched.Ingredients)

	pancakes.Servings = 2
	pancakes.Ingredients = []string{"Flour", "Oat milk"}
	var updated types.RecipeResponse
	w = c.do(http.MethodPut, "/recipe/"+strconv.FormatInt(created.ID, 10), pancakes, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 2, updated.Servings)

	var found []types.RecipeResponse
	w = c.do(http.MethodGet, "/recipes?vegetarian=true&includeIngredients=oat&excludeIngredients=eggs", nil, &found)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, found, 1)
	assert.Equal(t, updated, found[0])

	w = c.do(http.MethodGet, "/recipes?excludeIngredients=FLOUR", nil, &found)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, found)

	w = c.do(http.MethodDelete, "/recipe/"+strconv.FormatInt(created.ID, 10), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/recipe/"+strconv.FormatInt(created.ID, 10), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting again is not an error
	w = c.do(http.MethodDelete, "/recipe/"+strconv.FormatInt(created.ID, 10), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateMissingRecipe(t *testing.T) {
	c := newTestClient(t, nil)
	require.Equal(t, http.StatusOK, c.login(config.DefaultAuthUsername, "integration-pass"))

	w := c.do(http.MethodPut, "/recipe/404", types.RecipeRequest{
		Name:         "Ghost",
		Servings:     1,
		Ingredients:  []string{"air"},
		Instructions: "none",
	}, nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, middleware.MessageNotFound, resp.Message)
}

func TestRecipesRequireAuthentication(t *testing.T) {
	c := newTestClient(t, nil)

	w := c.do(http.MethodGet, "/recipes", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	assert.Equal(t, http.StatusUnauthorized, c.login(config.DefaultAuthUsername, "wrong"))

	// health and metrics stay public
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/metrics", nil, nil).Code)
}

func TestAuthDisabled(t *testing.T) {
	c := newTestClient(t, func(cfg *config.Config) { cfg.AuthEnabled = false })

	var found []types.RecipeResponse
	w := c.do(http.MethodGet, "/recipes", nil, &found)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, found)
}

func TestWriteRateLimit(t *testing.T) {
	c := newTestClient(t, func(cfg *config.Config) {
		cfg.AuthEnabled = false
		cfg.RateLimitEnabled = true
		cfg.RateLimitRequests = 2
		cfg.RateLimitWindow = time.Hour
	})

	body := types.RecipeRequest{Name: "Toast", Servings: 1, Ingredients: []string{"bread"}, Instructions: "toast"}
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/recipe", body, nil).Code)
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/recipe", body, nil).Code)

	w := c.do(http.MethodPost, "/recipe", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// reads are not counted
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/recipes", nil, nil).Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	c := newTestClient(t, func(cfg *config.Config) { cfg.AuthEnabled = false })

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/nope", nil, nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, c.do(http.MethodPatch, "/recipe/1", nil, nil).Code)
}
