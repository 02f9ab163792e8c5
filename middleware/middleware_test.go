package middleware

import (
	"go-marketplace/cart"
	"go-marketplace/storage"
	"go-marketplace/utils"
	"net/http"
	"net/http/httptest"
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

func TestAuthMiddleware(t *testing.T) {
	const secret = "s3cret"
	token, err := utils.GenerateToken("phone-1", secret, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(DeviceIDKey)) })

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "phone-1", w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(""))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestLogger(logrus.NewEntry(log)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates id", func(t *testing.T) {
		hook.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		require.Len(t, hook.AllEntries(), 1)
		entry := hook.LastEntry()
		assert.Equal(t, id, entry.Data["request_id"])
		assert.Equal(t, http.StatusOK, entry.Data["status"])
		assert.Equal(t, "/ping", entry.Data["path"])
	})

	t.Run("keeps caller id", func(t *testing.T) {
		hook.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", hook.LastEntry().Data["request_id"])
	})
}

func TestCartProvider(t *testing.T) {
	store := cart.New(storage.NewMemoryStorage())

	r := gin.New()
	r.GET("/scoped", CartProvider(store), func(c *gin.Context) {
		got, err := cart.FromContext(c.Request.Context())
		if assert.NoError(t, err) {
			assert.Same(t, store, got)
		}
		c.Status(http.StatusOK)
	})
	r.GET("/unscoped", func(c *gin.Context) {
		_, err := cart.FromContext(c.Request.Context())
		assert.ErrorIs(t, err, cart.ErrNoProvider)
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/scoped", "/unscoped"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://shop.example"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}
