package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window 单个客户端在时间窗口内的请求时间
type window struct {
	hits []time.Time
}

// prune 去掉 cutoff 之前的记录，返回剩余数量
func (w *window) prune(cutoff time.Time) int {
	kept := w.hits[:0]
	for _, t := range w.hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.hits = kept
	return len(kept)
}

// RateLimit 写接口限流中间件
// 每个客户端 IP 在 period 内最多 maxRequests 次请求，超过返回 429
func RateLimit(maxRequests int, period time.Duration) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*window)
	)
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-period)
			for ip, w := range clients {
				if w.prune(cutoff) == 0 {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		if maxRequests <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		w, ok := clients[ip]
		if !ok {
			w = &window{}
			clients[ip] = w
		}
		if w.prune(now.Add(-period)) >= maxRequests {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		w.hits = append(w.hits, now)
		mu.Unlock()

		c.Next()
	}
}
