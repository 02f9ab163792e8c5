package routes

import (
	"context"
	"go-marketplace/cart"
	"go-marketplace/config"
	"go-marketplace/storage"
	"go-marketplace/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	store := cart.New(storage.NewMemoryStorage())
	require.NoError(t, store.Load(context.Background()))

	log, _ := test.NewNullLogger()
	return NewRouter(&config.Config{JWTSecret: secret}, store, logrus.NewEntry(log))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReady_StorageClosed(t *testing.T) {
	kv := storage.NewMemoryStorage()
	store := cart.New(kv)
	require.NoError(t, store.Load(context.Background()))
	log, _ := test.NewNullLogger()
	r := NewRouter(&config.Config{}, store, logrus.NewEntry(log))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, kv.Close())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
}

func TestCartRoutes_Open(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"id":"a","title":"Mug","price":3}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":1`)
}

func TestCartRoutes_RequireToken(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateToken("phone-1", "s3cret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerRoute(t *testing.T) {
	r := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
