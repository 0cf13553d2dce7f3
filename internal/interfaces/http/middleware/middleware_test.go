package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRouter(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggerLevels(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newRouter(RequestID(), Logger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	cases := []struct {
		path  string
		level logrus.Level
		code  int
	}{
		{"/ok", logrus.InfoLevel, http.StatusOK},
		{"/missing", logrus.WarnLevel, http.StatusNotFound},
		{"/boom", logrus.ErrorLevel, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			hook.Reset()
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, tc.code, entry.Data["status_code"])
			assert.Equal(t, tc.path, entry.Data["path"])
			assert.NotEmpty(t, entry.Data["request_id"])
		})
	}
}

func jsonRouter(limit int64) (*gin.Engine, *any, *string) {
	var decoded any
	var raw string
	r := newRouter(JSONBody(limit))
	r.POST("/", func(c *gin.Context) {
		decoded, _ = c.Get(JSONBodyKey)
		b, _ := io.ReadAll(c.Request.Body)
		raw = string(b)
		c.Status(http.StatusOK)
	})
	return r, &decoded, &raw
}

func post(r http.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJSONBodyDecodes(t *testing.T) {
	r, decoded, raw := jsonRouter(1024)

	w := post(r, "application/json; charset=utf-8", `{"name":"tee","qty":2}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"name": "tee", "qty": float64(2)}, *decoded)
	assert.Equal(t, `{"name":"tee","qty":2}`, *raw)
}

func TestJSONBodyVendorMediaType(t *testing.T) {
	r, decoded, _ := jsonRouter(1024)

	w := post(r, "application/merge-patch+json", `[1,2]`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{float64(1), float64(2)}, *decoded)
}

func TestJSONBodyMalformed(t *testing.T) {
	r, _, _ := jsonRouter(1024)

	w := post(r, "application/json", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON body")
}

func TestJSONBodyRejectsTopLevelPrimitives(t *testing.T) {
	for _, body := range []string{`"abc"`, `5`, `true`, `null`, "   "} {
		t.Run(body, func(t *testing.T) {
			r, decoded, _ := jsonRouter(1024)

			w := post(r, "application/json", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, *decoded)
		})
	}
}

func TestJSONBodyAllowsLeadingWhitespace(t *testing.T) {
	r, decoded, _ := jsonRouter(1024)

	w := post(r, "application/json", "\n  {\"a\":1}")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"a": float64(1)}, *decoded)
}

func TestJSONBodyTooLarge(t *testing.T) {
	r, decoded, _ := jsonRouter(16)

	w := post(r, "application/json", `{"description":"far more than sixteen bytes"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Nil(t, *decoded)
}

func TestJSONBodyAtLimit(t *testing.T) {
	body := `{"a":"0123456"}`
	r, decoded, _ := jsonRouter(int64(len(body)))

	w := post(r, "application/json", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, *decoded)
}

func TestJSONBodyIgnoresOtherContent(t *testing.T) {
	r, decoded, raw := jsonRouter(1024)

	w := post(r, "text/plain", `{"not":"parsed"`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, *decoded)
	assert.Equal(t, `{"not":"parsed"`, *raw)
}

func TestJSONBodyEmpty(t *testing.T) {
	r, decoded, _ := jsonRouter(1024)

	w := post(r, "application/json", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, *decoded)
}

func TestRateLimitFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	log, hook := test.NewNullLogger()
	r := newRouter(RateLimit(1, client, log))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
