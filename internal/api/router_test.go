package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/foodgram-backend/config"
	"github.com/d60-Lab/foodgram-backend/internal/api/handler"
	"github.com/d60-Lab/foodgram-backend/internal/cache"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/service"
	"github.com/d60-Lab/foodgram-backend/internal/storage"
)

type apiTest struct {
	router *gin.Engine
	db     *gorm.DB
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Tag{}, &model.Ingredient{},
		&model.Recipe{}, &model.RecipeIngredient{},
		&model.Favorite{}, &model.ShoppingCart{}, &model.Subscription{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Server.DefaultPageSize = 6
	cfg.Server.RateLimitRPS = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Media.Root = t.TempDir()
	cfg.Media.BaseURL = "/media/"
	cfg.ShortLink.BaseURL = "http://localhost:8000/s/"

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	images := storage.NewImageStore(cfg.Media.Root, cfg.Media.BaseURL)
	links := cache.NewShortLinkCache(nil, 0)

	authSvc := service.NewAuthService(userRepo, cache.NewTokenDenylist(nil), "test-secret", time.Hour)
	h := handler.NewHandler(
		authSvc,
		service.NewUserService(userRepo, subscriptionRepo, images),
		service.NewReferenceService(tagRepo, ingredientRepo),
		service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, collectionRepo, subscriptionRepo, images, links, cfg.ShortLink.BaseURL),
		service.NewCollectionService(collectionRepo, recipeRepo),
		service.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo),
		service.NewShoppingListService(recipeRepo),
		handler.Options{DefaultPageSize: cfg.Server.DefaultPageSize, FrontendBaseURL: "http://localhost"},
	)
	return &apiTest{router: NewRouter(cfg, h, authSvc), db: db}
}

func (a *apiTest) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// register + login, returns the bearer token.
func (a *apiTest) signup(t *testing.T, name string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/users/", "", gin.H{
		"email":      name + "@example.com",
		"username":   name,
		"first_name": name,
		"last_name":  "Test",
		"password":   "s3cret!pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/token/login/", "", gin.H{
		"email":    name + "@example.com",
		"password": "s3cret!pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["auth_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (a *apiTest) seedCatalog(t *testing.T) (tagID, ingredientID uint) {
	t.Helper()
	tag := model.Tag{Name: "breakfast", Slug: "breakfast"}
	require.NoError(t, a.db.Create(&tag).Error)
	ing := model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, a.db.Create(&ing).Error)
	return tag.ID, ing.ID
}

func recipeBody(name string, tagID, ingredientID uint) gin.H {
	img := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	return gin.H{
		"name":         name,
		"image":        img,
		"text":         "Mix and bake.",
		"cooking_time": 15,
		"tags":         []uint{tagID},
		"ingredients":  []gin.H{{"id": ingredientID, "amount": 100}},
	}
}

func TestAuthFlow(t *testing.T) {
	a := newAPITest(t)

	// me requires a token
	w := a.do(t, http.MethodGet, "/api/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.signup(t, "alice")
	w = a.do(t, http.MethodGet, "/api/users/me/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	w = a.do(t, http.MethodPost, "/api/auth/token/logout/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecipeCRUDOverHTTP(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")
	bob := a.signup(t, "bob")

	// anonymous create is rejected
	w := a.do(t, http.MethodPost, "/api/recipes/", "", recipeBody("Bread", tagID, ingID))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodPost, "/api/recipes/", alice, recipeBody("Bread", tagID, ingID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "Bread", created["name"])
	recipeID := uint(created["id"].(float64))

	w = a.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d/", recipeID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	author := got["author"].(map[string]any)
	assert.Equal(t, "alice", author["username"])
	assert.Equal(t, false, got["is_favorited"])

	// only the author may modify
	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/recipes/%d/", recipeID), bob, recipeBody("Stolen", tagID, ingID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d/", recipeID), bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/recipes/%d/", recipeID), alice, recipeBody("Sourdough", tagID, ingID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Sourdough", decode(t, w)["name"])

	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d/", recipeID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d/", recipeID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeValidationErrorShape(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")

	body := recipeBody("Bread", tagID, ingID)
	body["ingredients"] = []gin.H{}
	w := a.do(t, http.MethodPost, "/api/recipes/", alice, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	// field errors come back keyed by field, DRF style
	assert.Contains(t, decode(t, w), "ingredients")
}

func TestPaginationEnvelope(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")

	for i := 0; i < 5; i++ {
		w := a.do(t, http.MethodPost, "/api/recipes/", alice, recipeBody(fmt.Sprintf("Dish %d", i), tagID, ingID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := a.do(t, http.MethodGet, "/api/recipes/?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, float64(5), env["count"])
	assert.Len(t, env["results"], 2)
	require.NotNil(t, env["next"])
	require.NotNil(t, env["previous"])
	assert.Contains(t, env["next"].(string), "page=3")
	assert.Contains(t, env["previous"].(string), "page=1")

	// last page has no next
	w = a.do(t, http.MethodGet, "/api/recipes/?page=3&limit=2", "", nil)
	env = decode(t, w)
	assert.Nil(t, env["next"])
	assert.Len(t, env["results"], 1)
}

func TestFavoriteAndCartEndpoints(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")
	bob := a.signup(t, "bob")

	w := a.do(t, http.MethodPost, "/api/recipes/", alice, recipeBody("Bread", tagID, ingID))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := uint(decode(t, w)["id"].(float64))

	for _, sub := range []string{"favorite", "shopping_cart"} {
		path := fmt.Sprintf("/api/recipes/%d/%s/", recipeID, sub)

		w = a.do(t, http.MethodPost, path, bob, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		short := decode(t, w)
		assert.Equal(t, "Bread", short["name"])

		w = a.do(t, http.MethodPost, path, bob, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = a.do(t, http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = a.do(t, http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestSubscriptionEndpoints(t *testing.T) {
	a := newAPITest(t)
	alice := a.signup(t, "alice")
	_ = a.signup(t, "bob")

	var bob model.User
	require.NoError(t, a.db.Where("username = ?", "bob").First(&bob).Error)

	w := a.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", bob.ID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["is_subscribed"])

	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", bob.ID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// self-subscription is a 400
	var me model.User
	require.NoError(t, a.db.Where("username = ?", "alice").First(&me).Error)
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", me.ID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/users/subscriptions/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe/", bob.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe/", bob.ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShortLinkRedirect(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")

	w := a.do(t, http.MethodPost, "/api/recipes/", alice, recipeBody("Bread", tagID, ingID))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := uint(decode(t, w)["id"].(float64))

	w = a.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d/get-link/", recipeID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	link, _ := decode(t, w)["short-link"].(string)
	require.True(t, strings.HasPrefix(link, "http://localhost:8000/s/"), link)
	hash := strings.TrimPrefix(link, "http://localhost:8000/s/")

	w = a.do(t, http.MethodGet, "/s/"+hash, "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("http://localhost/recipes/%d/", recipeID), w.Header().Get("Location"))

	w = a.do(t, http.MethodGet, "/s/zzzzzz", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	a := newAPITest(t)
	tagID, ingID := a.seedCatalog(t)
	alice := a.signup(t, "alice")

	w := a.do(t, http.MethodPost, "/api/recipes/", alice, recipeBody("Bread", tagID, ingID))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := uint(decode(t, w)["id"].(float64))

	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart/", recipeID), alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodGet, "/api/recipes/download_shopping_cart/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestIngredientSearchEndpoint(t *testing.T) {
	a := newAPITest(t)
	for _, ing := range []model.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
	} {
		require.NoError(t, a.db.Create(&ing).Error)
	}

	w := a.do(t, http.MethodGet, "/api/ingredients/?name=su", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "sugar", out[0]["name"])
}
