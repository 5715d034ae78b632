package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(max int, period time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(max, period))
	router.POST("/transactions", func(c *gin.Context) {
		c.String(http.StatusCreated, "ok")
	})
	return router
}

func doReq(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	router := newLimitedRouter(2, time.Minute)

	// 同一 IP 第 3 次返回 429
	assert.Equal(t, http.StatusCreated, doReq(router, "192.168.1.1").Code)
	assert.Equal(t, http.StatusCreated, doReq(router, "192.168.1.1").Code)
	w3 := doReq(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "频繁")

	// 不同 IP 互不影响
	assert.Equal(t, http.StatusCreated, doReq(router, "192.168.1.2").Code)
	assert.Equal(t, http.StatusCreated, doReq(router, "192.168.1.2").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	router := newLimitedRouter(1, 100*time.Millisecond)

	assert.Equal(t, http.StatusCreated, doReq(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doReq(router, "10.0.0.1").Code)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, http.StatusCreated, doReq(router, "10.0.0.1").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	router := newLimitedRouter(0, time.Minute)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusCreated, doReq(router, "10.0.0.2").Code)
	}
}

func TestWindowPrune(t *testing.T) {
	now := time.Now()
	w := &window{hits: []time.Time{now.Add(-2 * time.Minute), now.Add(-30 * time.Second), now}}
	assert.Equal(t, 2, w.prune(now.Add(-time.Minute)))
	assert.Len(t, w.hits, 2)
}
